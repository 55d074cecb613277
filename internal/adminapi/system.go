package adminapi

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"
	"github.com/talkincode/pharmadmin/internal/domain"
	"github.com/talkincode/pharmadmin/internal/webserver"
)

// System endpoints are gated on the ADMIN operator level.
func registerSystemRoutes() {
	webserver.ApiGET("/system/status", systemStatus, webserver.RequireAdmin)
	webserver.ApiGET("/system/settings", listSettings, webserver.RequireAdmin)
	webserver.ApiPUT("/system/settings", saveSettings, webserver.RequireAdmin)
}

type systemStatusView struct {
	Hostname       string  `json:"hostname"`
	Goroutines     int     `json:"goroutines"`
	CpuPercent     float64 `json:"cpu_percent"`
	MemUsedMb      uint64  `json:"mem_used_mb"`
	MemTotalMb     uint64  `json:"mem_total_mb"`
	ProcessRssMb   uint64  `json:"process_rss_mb"`
	ProcessCpuPerc float64 `json:"process_cpu_percent"`
	Time           string  `json:"time"`
}

func systemStatus(c echo.Context) error {
	view := systemStatusView{
		Goroutines: runtime.NumGoroutine(),
		Time:       time.Now().Format(time.RFC3339),
	}
	view.Hostname, _ = os.Hostname()

	if cpuuse, err := cpu.Percent(0, false); err == nil && len(cpuuse) > 0 {
		view.CpuPercent = cpuuse[0]
	}
	if meminfo, err := mem.VirtualMemory(); err == nil {
		view.MemUsedMb = meminfo.Used / 1024 / 1024
		view.MemTotalMb = meminfo.Total / 1024 / 1024
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if cpuuse, err := p.CPUPercent(); err == nil {
			view.ProcessCpuPerc = cpuuse
		}
		if meminfo, err := p.MemoryInfo(); err == nil {
			view.ProcessRssMb = meminfo.RSS / 1024 / 1024
		}
	}
	return ok(c, view)
}

func listSettings(c echo.Context) error {
	var rows []domain.SysConfig
	if err := GetDB(c).Order("sort ASC").Find(&rows).Error; err != nil {
		return failInternal(c, "SETTINGS_GET", err)
	}
	return ok(c, rows)
}

// saveSettings upserts a flat "category.name" -> value map
func saveSettings(c echo.Context) error {
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse settings")
	}
	if len(payload) == 0 {
		return fail(c, http.StatusBadRequest, "No settings supplied")
	}
	if err := GetApp(c).SaveSettings(payload); err != nil {
		return failInternal(c, "SETTINGS_PUT", err)
	}
	logOperation(c, "settings_update", "updated system settings")
	return ok(c, map[string]string{"result": "ok"})
}
