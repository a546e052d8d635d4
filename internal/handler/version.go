package handler

import (
	"net/http"
	"runtime"
	"time"
)

// Build metadata, set with -ldflags "-X github.com/osse101/ZetaFarm_Go/internal/handler.GitCommit=..."
var (
	BuildTime = "unknown"
	GitCommit = "unset"
)

// VersionInfo describes the running build
type VersionInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
	Uptime    string `json:"uptime"`
}

// HandleVersion reports the build that is serving requests
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(service, version string) http.HandlerFunc {
	started := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionInfo{
			Service:   service,
			Version:   version,
			GoVersion: runtime.Version(),
			BuildTime: BuildTime,
			GitCommit: GitCommit,
			Uptime:    time.Since(started).Truncate(time.Second).String(),
		})
	}
}
