package main

import (
	"io"

	"github.com/lixenwraith/recoil/plot"
	"github.com/lixenwraith/recoil/profile"
	"github.com/lixenwraith/recoil/recoil"
	"github.com/lixenwraith/recoil/toml"
)

// tableDump is the -dump document
type tableDump struct {
	Weapon           string  `toml:"weapon"`
	Barrel           string  `toml:"barrel"`
	Sight            string  `toml:"sight"`
	Sensitivity      string  `toml:"sensitivity"`
	FieldOfView      string  `toml:"fov"`
	UpdatesPerBullet int     `toml:"updates_per_bullet"`
	IntervalMs       float64 `toml:"interval_ms"`
	Codes            []int   `toml:"codes"` // legacy ordinals of weapon, barrel, sight
	Steps            [][]int `toml:"steps"`
}

func newTableDump(e *recoil.Engine) tableDump {
	cfg := e.Config()
	table := e.Table()
	steps := make([][]int, len(table))
	for i, s := range table {
		steps[i] = []int{int(s.X), int(s.Y)}
	}
	return tableDump{
		Weapon:           e.WeaponName(),
		Barrel:           e.BarrelName(),
		Sight:            e.SightName(),
		Sensitivity:      e.FormattedSensitivity(),
		FieldOfView:      e.FormattedFieldOfView(),
		UpdatesPerBullet: e.UpdatesPerBullet(),
		IntervalMs:       e.MicroStepInterval(),
		Codes:            []int{profile.Code(cfg.Weapon), profile.Code(cfg.Barrel), profile.Code(cfg.Sight)},
		Steps:            steps,
	}
}

// writeDump writes the current configuration and its compensation table as TOML
func writeDump(w io.Writer, e *recoil.Engine) error {
	data, err := toml.Marshal(newTableDump(e))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// savePlot renders the current compensation path to path and returns the file size
func savePlot(path string, e *recoil.Engine) (int64, error) {
	img := plot.Render(e.Table(), e.UpdatesPerBullet(), plot.DefaultOptions())
	return plot.Save(path, img)
}
