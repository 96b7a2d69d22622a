package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/recoil/audio"
	"github.com/lixenwraith/recoil/config"
	"github.com/lixenwraith/recoil/profile"
	"github.com/lixenwraith/recoil/recoil"
)

var (
	catalogFlag  = flag.String("catalog", "", "Pattern catalog TOML file (default: embedded catalog)")
	settingsFlag = flag.String("settings", "recoil.toml", "Settings file, loaded at start and written by 'p'")
	weaponFlag   = flag.String("weapon", "", "Weapon key, overrides settings (e.g. ak, mp5, tommy)")
	barrelFlag   = flag.String("barrel", "", "Barrel key, overrides settings (none, suppressor)")
	sightFlag    = flag.String("sight", "", "Sight key, overrides settings (none, holo, 8x, simple)")
	sensFlag     = flag.Float64("sens", 0, "In-game sensitivity, overrides settings")
	fovFlag      = flag.Float64("fov", 0, "In-game field of view, overrides settings")
	dumpFlag     = flag.Bool("dump", false, "Print the compensation table as TOML and exit")
	plotFlag     = flag.String("plot", "", "Render the compensation path to an image (.webp, .png, .tga) and exit")
	soundFlag    = flag.Bool("sound", false, "Play a click per micro-step")
	debugFlag    = flag.Bool("debug", false, "Write debug log to logs/")
)

func main() {
	flag.Parse()

	settings, err := config.Load(*settingsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		os.Exit(1)
	}
	overrideSettings(&settings)

	if logFile := setupLogging(settings.Debug); logFile != nil {
		defer logFile.Close()
	}

	reg, err := loadRegistry(*catalogFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	eng := recoil.New(reg)
	if err := settings.Apply(eng); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	log.Printf("configured %s / %s / %s sens=%s fov=%s", eng.WeaponName(), eng.BarrelName(), eng.SightName(),
		eng.FormattedSensitivity(), eng.FormattedFieldOfView())

	if *plotFlag != "" {
		n, err := savePlot(*plotFlag, eng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write plot: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%s)\n", *plotFlag, humanize.Bytes(uint64(n)))
		return
	}

	if *dumpFlag || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := writeDump(os.Stdout, eng); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write table: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runInteractive(eng, settings)
}

// overrideSettings applies explicitly set flags on top of the loaded settings
func overrideSettings(s *config.Settings) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "weapon":
			s.Weapon = *weaponFlag
		case "barrel":
			s.Barrel = *barrelFlag
		case "sight":
			s.Sight = *sightFlag
		case "sens":
			s.Sensitivity = *sensFlag
		case "fov":
			s.FieldOfView = *fovFlag
		case "sound":
			s.Sound = *soundFlag
		case "debug":
			s.Debug = *debugFlag
		}
	})
}

func loadRegistry(path string) (*profile.Registry, error) {
	if path == "" {
		return profile.DefaultRegistry()
	}
	return profile.LoadCatalogFile(path)
}

func runInteractive(eng *recoil.Engine, settings config.Settings) {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mRECOIL-SIM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	clicker := audio.NewClicker()
	if settings.Sound {
		if err := clicker.Init(); err != nil {
			// Non-fatal, the simulator runs silent
			log.Printf("Audio initialization failed: %v", err)
		} else {
			clicker.SetMuted(false)
			defer clicker.Close()
		}
	}

	newSim(screen, eng, settings, *settingsFlag, clicker).run()
}
