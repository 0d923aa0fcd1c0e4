package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/livedreligion/wheresreligion/internal/media"
)

type KindFlag media.Kind

// Set implements pflag.Value.
func (k *KindFlag) Set(v string) error {
	kind, err := media.ParseKind(v)
	if err != nil {
		return err
	}
	*k = KindFlag(kind)
	return nil
}

// String implements pflag.Value.
func (k *KindFlag) String() string {
	if k == nil {
		return ""
	}
	return string(*k)
}

// Type implements pflag.Value.
func (k *KindFlag) Type() string {
	return "KindFlag"
}

var (
	_ pflag.Value = (*KindFlag)(nil)
)

func newUploadCommand() *cobra.Command {
	kind := KindFlag(media.KindImage)
	uploadCmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a media file and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("os.Open(%s) > %w", args[0], err)
			}
			defer func() {
				_ = file.Close()
			}()

			location, err := media.NewUploader(cfg.Upload.BaseURL).Upload(cmd.Context(), media.Kind(kind), file)
			if err != nil {
				return fmt.Errorf("uploader.Upload() > %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), location)
			return err
		},
	}
	uploadCmd.Flags().Var(&kind, "kind", "Kind of media. Options: image, video, audio")
	return uploadCmd
}
