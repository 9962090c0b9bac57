package app

import (
	"context"
	"os"
	"path/filepath"
)

// DownloadFilename mirrors the web dashboard's export name.
func DownloadFilename(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "conversation-" + id + ".json"
}

// Download saves one conversation as indented JSON under dir (the
// configured download dir when empty) and returns the written path.
func (a *Application) Download(ctx context.Context, id, dir string) (string, error) {
	data, err := a.Client.FetchRaw(ctx, id)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = a.Config.DownloadDir
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, DownloadFilename(id))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	a.Logger.Info("conversation downloaded", map[string]interface{}{"id": id, "path": path})
	return path, nil
}
