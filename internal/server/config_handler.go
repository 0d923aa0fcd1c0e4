package server

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/livedreligion/wheresreligion/internal/mapview"
)

const configService = "ConfigService"

func (s *Server) configServiceHandler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return procedures(configService, map[string]http.Handler{
		"Get": connect.NewUnaryHandler(procedure(configService, "Get"), s.GetConfig, opts...),
	})
}

func (s *Server) GetConfig(
	ctx context.Context,
	req *connect.Request[GetConfigRequest],
) (*connect.Response[GetConfigResponse], error) {
	return connect.NewResponse(&GetConfigResponse{
		MapKey:        s.cfg.Map.APIKey,
		PlacesKey:     s.cfg.Map.PlacesKey,
		AuthBaseURL:   s.cfg.Auth.BaseURL,
		IssuerBaseURL: s.cfg.Auth.IssuerBaseURL,
		ClientID:      s.cfg.Auth.ClientID,
		DefaultCenter: mapview.DefaultCenter,
		DefaultZoom:   mapview.DefaultZoom,
	}), nil
}
