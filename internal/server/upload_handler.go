package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/livedreligion/wheresreligion/internal/media"
)

const maxUploadSize = 64 << 20

type uploadResponse struct {
	Location string `json:"location"`
}

// Upload forwards the "file" part of a multipart form to the upload proxy.
// The kind query parameter picks the stored file name; it defaults to image.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	kindParam := r.URL.Query().Get("kind")
	if kindParam == "" {
		kindParam = string(media.KindImage)
	}
	kind, err := media.ParseKind(kindParam)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	location, err := s.uploader.Upload(r.Context(), kind, file)
	if err != nil {
		slog.Default().Error("failed to upload media", "kind", kind, "error", err)
		http.Error(w, "upload failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Location", location)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(uploadResponse{Location: location})
}
