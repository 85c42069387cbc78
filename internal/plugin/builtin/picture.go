package builtin

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/log"
)

// PicturePlugin assembles the raw captures of a finished sequence into
// the final picture file, maintains the last-two-pictures history and
// bumps the taken counter.
type PicturePlugin struct {
	logger *log.Logger
}

// NewPicturePlugin creates the picture plugin.
func NewPicturePlugin(logger *log.Logger) *PicturePlugin {
	if logger == nil {
		logger = log.Discard()
	}
	return &PicturePlugin{logger: logger.WithComponent("picture")}
}

// Name implements hook.Plugin.
func (p *PicturePlugin) Name() string { return "picture" }

// Hooks implements hook.Plugin.
func (p *PicturePlugin) Hooks() map[string]hook.Handler {
	return map[string]hook.Handler{
		hook.StateDo("processing"): {Needs: needsCfgApp, Fn: p.processingDo},
	}
}

func (p *PicturePlugin) processingDo(ctx hook.Context) (any, error) {
	cfg, err := cfgOf(ctx)
	if err != nil {
		return nil, err
	}
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	if len(a.Captures) == 0 {
		return nil, fmt.Errorf("no captures to assemble")
	}

	name, err := a.PictureName()
	if err != nil {
		return nil, err
	}
	dir := cfg.General.Directory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create picture dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := assemble(a.Captures, path); err != nil {
		return nil, fmt.Errorf("assemble %s: %w", name, err)
	}

	count := len(a.Captures)
	a.Captures = nil
	a.PreviousPreviousPicture = a.PreviousPicture
	a.PreviousPicture = path
	if err := a.Count.IncrementTaken(); err != nil {
		p.logger.Warn("update taken counter: %v", err)
	}
	if err := a.Count.ResetDuplicates(cfg.Printer.MaxDuplicates); err != nil {
		p.logger.Warn("reset duplicate counter: %v", err)
	}
	p.logger.Info("assembled %s from %d captures", path, count)
	return nil, nil
}

// assemble concatenates the raw capture files into one output file. A
// real booth would compose them onto a template here; concatenation
// keeps every capture byte in the result, which is all the mock camera
// needs.
func assemble(captures []string, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	for _, src := range captures {
		data, err := os.ReadFile(src)
		if err != nil {
			out.Close()
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return err
		}
	}
	return out.Close()
}
