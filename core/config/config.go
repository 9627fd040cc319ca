package config

import (
	"os"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// Entity is the library's own process-wide configuration, distinct from
// the governance Rule sets (flow/degrade/paramFlow/authority/system),
// which are loaded separately through each core/* package's
// LoadRules (spec.md §6). This mirrors the split in vendored
// sentinel-golang between core/config (library tunables) and the rule
// managers (policy).
type Entity struct {
	App struct {
		Name string `json:"name"`
		Type int32  `json:"type"`
	} `json:"app"`

	Stat struct {
		// SampleCount/IntervalMs describe the default second-resolution
		// sliding window every new StatisticNode is built with.
		SampleCount uint32 `json:"sampleCount"`
		IntervalMs  uint32 `json:"intervalMs"`

		// MaxResourceAmount is the soft cap on distinct resource nodes.
		MaxResourceAmount uint32 `json:"maxResourceAmount"`

		System struct {
			CollectIntervalMs uint32 `json:"collectIntervalMs"`
		} `json:"system"`
	} `json:"stat"`

	MaxContextAmount uint32 `json:"maxContextAmount"`
}

func NewDefaultEntity() *Entity {
	e := &Entity{}
	e.App.Name = UnknownAppName
	e.Stat.SampleCount = DefaultSampleCount
	e.Stat.IntervalMs = DefaultIntervalMs
	e.Stat.MaxResourceAmount = DefaultMaxResourceAmount
	e.Stat.System.CollectIntervalMs = DefaultSystemStatCollectIntervalMs
	e.MaxContextAmount = DefaultMaxContextAmount
	return e
}

func (e *Entity) checkValid() error {
	if e.App.Name == "" {
		return errors.New("config: app.name is empty")
	}
	if e.Stat.IntervalMs == 0 || e.Stat.SampleCount == 0 || e.Stat.IntervalMs%e.Stat.SampleCount != 0 {
		return errors.New("config: stat.intervalMs must be a positive multiple of stat.sampleCount")
	}
	if e.MaxContextAmount == 0 {
		return errors.New("config: maxContextAmount must be positive")
	}
	return nil
}

var (
	globalCfg    = NewDefaultEntity()
	globalCfgMux sync.RWMutex
)

// LoadFromYAML replaces the active configuration with the contents of
// the YAML file at path (spec.md §A.3 ambient config; unrelated to the
// out-of-scope dynamic rule source in spec.md §1).
func LoadFromYAML(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "config: read file")
	}
	e := NewDefaultEntity()
	if err := yaml.Unmarshal(b, e); err != nil {
		return errors.Wrap(err, "config: parse yaml")
	}
	if err := e.checkValid(); err != nil {
		return err
	}
	globalCfgMux.Lock()
	globalCfg = e
	globalCfgMux.Unlock()
	return nil
}

func ApplyEntity(e *Entity) error {
	if err := e.checkValid(); err != nil {
		return err
	}
	globalCfgMux.Lock()
	globalCfg = e
	globalCfgMux.Unlock()
	return nil
}

func current() *Entity {
	globalCfgMux.RLock()
	defer globalCfgMux.RUnlock()
	return globalCfg
}

func AppName() string                  { return current().App.Name }
func MetricStatisticSampleCount() uint32 { return current().Stat.SampleCount }
func MetricStatisticIntervalMs() uint32  { return current().Stat.IntervalMs }
func MaxResourceAmount() uint32          { return current().Stat.MaxResourceAmount }
func SystemStatCollectIntervalMs() uint32 {
	return current().Stat.System.CollectIntervalMs
}
func MaxContextAmount() uint32 { return current().MaxContextAmount }
