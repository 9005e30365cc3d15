package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mixdeck/internal/images"
	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/services"
	"github.com/desertthunder/mixdeck/internal/shared"
	"github.com/desertthunder/mixdeck/internal/uri"
	"github.com/urfave/cli/v3"
)

// URIInfo is the classification of one resource URI.
type URIInfo struct {
	URI      string               `json:"uri"`
	Source   string               `json:"source,omitempty"`
	Type     uri.Kind             `json:"type,omitempty"`
	Icon     string               `json:"icon,omitempty"`
	IndexKey string               `json:"index_key"`
	Fields   map[uri.Field]string `json:"fields,omitempty"`
}

func classifyURI(resource string) URIInfo {
	info := URIInfo{
		URI:      resource,
		Icon:     uri.SourceIcon(resource),
		IndexKey: uri.IndexFriendly(resource),
		Fields:   map[uri.Field]string{},
	}
	info.Source, _ = uri.Source(resource)
	info.Type, _ = uri.Type(resource)
	for _, field := range uri.Fields {
		if value, ok := uri.Extract(field, resource); ok {
			info.Fields[field] = value
		}
	}
	return info
}

// InspectURI prints the source, type, icon and positional ids of a URI.
func (r *Runner) InspectURI(ctx context.Context, cmd *cli.Command) error {
	resource := cmd.StringArg("uri")
	if resource == "" {
		return fmt.Errorf("%w: uri is required", shared.ErrMissingArgument)
	}

	info := classifyURI(resource)
	if cmd.Bool("json") {
		return r.writeJSON(info, cmd.Bool("pretty"))
	}

	r.writePlainHeader(resource)
	r.writePlain("source:    %s\n", orNone(info.Source))
	r.writePlain("type:      %s\n", orNone(string(info.Type)))
	r.writePlain("icon:      %s\n", orNone(info.Icon))
	r.writePlain("index key: %s\n", info.IndexKey)
	for _, field := range uri.Fields {
		if value, ok := info.Fields[field]; ok {
			r.writePlain("%-10s %s\n", string(field)+":", value)
		}
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// NormalizeImages reads an image list and prints the normalized size set.
func (r *Runner) NormalizeImages(ctx context.Context, cmd *cli.Command) error {
	in, err := r.openInput(cmd.StringArg("file"))
	if err != nil {
		return err
	}
	defer in.Close()

	payload, err := services.Decode(in)
	if err != nil {
		return fmt.Errorf("failed to decode images: %w", err)
	}

	if cmd.Bool("digest") {
		list, ok := models.AsList(payload)
		if !ok {
			return fmt.Errorf("%w: --digest needs an image list", shared.ErrInvalidInput)
		}
		server := images.Server{Host: r.config.Mopidy.Host, Port: r.config.Mopidy.Port}
		payload = images.Digest(server, list)
	}

	sizes := images.Normalize(payload)
	r.logger.Debug("normalized images", "complete", sizes.Complete())

	if !cmd.Bool("json") && sizes.IsEmpty() {
		return r.writePlain("%s no usable images\n", r.palette.Warn("!"))
	}
	return r.writeJSON(sizes, cmd.Bool("pretty"))
}

// GenerateID prints a new uuid or numeric id.
func (r *Runner) GenerateID(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("numeric") {
		return r.writePlain("%s\n", shared.GenerateNumericID())
	}
	return r.writePlain("%s\n", shared.GenerateID())
}
