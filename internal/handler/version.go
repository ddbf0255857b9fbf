package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
	"time"
)

// Set with -ldflags "-X github.com/osse101/TaskQuest_Go/internal/handler.Version=..."
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

var startedAt = time.Now()

// VersionInfo describes the running TaskQuest build.
type VersionInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
	Uptime    string `json:"uptime"`
}

// HandleVersion returns build metadata and process uptime
// @Summary Build version
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, currentVersion())
	}
}

func currentVersion() VersionInfo {
	info := VersionInfo{
		Service:   "taskquest",
		Version:   Version,
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		Uptime:    time.Since(startedAt).Truncate(time.Second).String(),
	}
	if info.Version == "" || info.Version == "dev" {
		if v := os.Getenv("VERSION"); v != "" {
			info.Version = v
		} else {
			info.Version = "dev"
		}
	}

	// Fall back to the VCS stamp go build embeds
	if info.GitCommit == "" || info.BuildTime == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				switch {
				case s.Key == "vcs.revision" && info.GitCommit == "":
					info.GitCommit = s.Value
				case s.Key == "vcs.time" && info.BuildTime == "":
					info.BuildTime = s.Value
				}
			}
		}
	}
	return info
}
