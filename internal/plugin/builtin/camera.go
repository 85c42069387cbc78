package builtin

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/log"
)

// CameraPlugin runs the camera: live preview while a capture is being
// framed, one shot per pass through the capture state. Raw capture
// files land in a per-session temp directory and are handed to the
// picture plugin through the app model.
type CameraPlugin struct {
	logger *log.Logger

	// sessionDir holds the raw files of the current sequence. Created
	// lazily at the first capture, discarded when the final picture has
	// been assembled.
	sessionDir string
}

// NewCameraPlugin creates the camera plugin.
func NewCameraPlugin(logger *log.Logger) *CameraPlugin {
	if logger == nil {
		logger = log.Discard()
	}
	return &CameraPlugin{logger: logger.WithComponent("camera")}
}

// Name implements hook.Plugin.
func (p *CameraPlugin) Name() string { return "camera" }

// Hooks implements hook.Plugin.
func (p *CameraPlugin) Hooks() map[string]hook.Handler {
	return map[string]hook.Handler{
		hook.StateExit("wait"):       {Needs: needsApp, Fn: p.waitExit},
		hook.StateEnter("preview"):   {Needs: needsApp, Fn: p.previewEnter},
		hook.StateExit("preview"):    {Needs: needsApp, Fn: p.previewExit},
		hook.StateDo("capture"):      {Needs: needsApp, Fn: p.captureDo},
		hook.StateExit("processing"): {Fn: p.processingExit},
		hook.Cleanup:                 {Needs: needsApp, Fn: p.cleanup},
	}
}

func (p *CameraPlugin) waitExit(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	a.Captures = nil
	a.CaptureDate = ""
	return nil, nil
}

func (p *CameraPlugin) previewEnter(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	if len(a.Captures) == 0 {
		a.StampCaptureDate()
	}
	if err := a.Camera.StartPreview(); err != nil {
		return nil, fmt.Errorf("start preview: %w", err)
	}
	return nil, nil
}

func (p *CameraPlugin) previewExit(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	a.Camera.StopPreview()
	return nil, nil
}

func (p *CameraPlugin) captureDo(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	if p.sessionDir == "" {
		dir := filepath.Join(os.TempDir(), "photobooth-"+uuid.NewString()[:8])
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
		p.sessionDir = dir
	}
	name := fmt.Sprintf("%s_%d.jpg", a.CaptureDate, len(a.Captures)+1)
	path, err := a.Camera.Capture(p.sessionDir, name)
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", name, err)
	}
	a.Captures = append(a.Captures, path)
	p.logger.Debug("captured %s (%d/%d)", path, len(a.Captures), a.CaptureNbr)
	return nil, nil
}

func (p *CameraPlugin) processingExit(hook.Context) (any, error) {
	p.discardSession()
	return nil, nil
}

func (p *CameraPlugin) cleanup(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	a.Camera.StopPreview()
	p.discardSession()
	return nil, nil
}

func (p *CameraPlugin) discardSession() {
	if p.sessionDir == "" {
		return
	}
	if err := os.RemoveAll(p.sessionDir); err != nil {
		p.logger.Warn("remove session dir %s: %v", p.sessionDir, err)
	}
	p.sessionDir = ""
}
