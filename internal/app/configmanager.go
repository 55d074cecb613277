package app

import (
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/talkincode/pharmadmin/internal/domain"
	"github.com/talkincode/pharmadmin/pkg/common"
	"go.uber.org/zap"
)

// ConfigManager reads and writes runtime settings stored in sys_config
// rows. Values are cached briefly to keep hot paths off the database.
type ConfigManager struct {
	app      *Application
	mu       sync.RWMutex
	cache    map[string]string
	cachedAt time.Time
}

const configCacheTTL = 30 * time.Second

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{app: app, cache: map[string]string{}}
}

func (m *ConfigManager) load() map[string]string {
	m.mu.RLock()
	if time.Since(m.cachedAt) < configCacheTTL && len(m.cache) > 0 {
		defer m.mu.RUnlock()
		return m.cache
	}
	m.mu.RUnlock()

	var rows []domain.SysConfig
	if err := m.app.DB().Find(&rows).Error; err != nil {
		zap.L().Error("failed to load settings", zap.Error(err))
		return m.cache
	}

	next := make(map[string]string, len(rows))
	for _, row := range rows {
		next[row.Type+"."+row.Name] = row.Value
	}

	m.mu.Lock()
	m.cache = next
	m.cachedAt = time.Now()
	m.mu.Unlock()
	return next
}

func (m *ConfigManager) invalidate() {
	m.mu.Lock()
	m.cachedAt = time.Time{}
	m.mu.Unlock()
}

func (m *ConfigManager) GetString(category, name string) string {
	return m.load()[category+"."+name]
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.load()[category+"."+name])
}

func (m *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(m.load()[category+"."+name])
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.load()[category+"."+name])
}

// GetSection decodes every setting of a category into the given struct,
// matching field names case-insensitively.
func (m *ConfigManager) GetSection(category string, out interface{}) error {
	values := map[string]interface{}{}
	prefix := category + "."
	for key, value := range m.load() {
		if strings.HasPrefix(key, prefix) {
			values[strings.TrimPrefix(key, prefix)] = value
		}
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(values)
}

// SaveSettings upserts a flat "category.name" -> value map
func (m *ConfigManager) SaveSettings(settings map[string]interface{}) error {
	db := m.app.DB()
	for key, value := range settings {
		parts := strings.SplitN(key, ".", 2)
		if len(parts) != 2 {
			continue
		}
		strval := cast.ToString(value)
		var row domain.SysConfig
		err := db.Where("type = ? and name = ?", parts[0], parts[1]).First(&row).Error
		if err != nil {
			row = domain.SysConfig{
				ID:    common.UUIDint64(),
				Type:  parts[0],
				Name:  parts[1],
				Value: strval,
			}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
			continue
		}
		if err := db.Model(&domain.SysConfig{}).Where("id = ?", row.ID).
			Updates(map[string]interface{}{"value": strval, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
	}
	m.invalidate()
	return nil
}
