package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/abelzach/KaroBuddy/internal/database"
)

// SystemHandlers exposes process and host resource readings for the
// dashboard's status panel
type SystemHandlers struct {
	db        *database.DB
	startedAt time.Time
	log       zerolog.Logger
}

// NewSystemHandlers creates system monitoring handlers
func NewSystemHandlers(db *database.DB, log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		db:        db,
		startedAt: time.Now(),
		log:       log.With().Str("handler", "system").Logger(),
	}
}

// HandleStatus handles GET /system/status
func (h *SystemHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := map[string]interface{}{
		"status":         "running",
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"process_memory": map[string]interface{}{
			"alloc_mb": m.Alloc / 1024 / 1024,
			"sys_mb":   m.Sys / 1024 / 1024,
			"num_gc":   m.NumGC,
		},
	}

	// Host readings are best-effort; status still reports without them
	if cpuPercents, err := cpu.Percent(0, false); err == nil && len(cpuPercents) > 0 {
		response["cpu_percent"] = cpuPercents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		response["host_memory"] = map[string]interface{}{
			"total_mb":     vm.Total / 1024 / 1024,
			"used_mb":      vm.Used / 1024 / 1024,
			"used_percent": vm.UsedPercent,
		}
	}

	dbStatus := "ok"
	if err := h.db.Ping(); err != nil {
		dbStatus = "unreachable"
	}
	response["database"] = dbStatus

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode status response")
	}
}
