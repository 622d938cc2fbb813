// Interactive walkthrough of the soundscape engine
// Move a listener through a hard-coded level with zones, spatial
// sources and a wall, and drive combat, music and one-shots from keys
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"

	"github.com/veilcraft/soundscape/config"
	"github.com/veilcraft/soundscape/core"
	"github.com/veilcraft/soundscape/engine"
	"github.com/veilcraft/soundscape/sfx"
	"github.com/veilcraft/soundscape/vmath"
)

const (
	tickInterval = 33 * time.Millisecond

	// A vertical wall occludes sources on the far side
	wallX     = 26.0
	wallGapY  = 10.0
	wallGapY2 = 13.0
)

type zoneMarker struct {
	zone  engine.AudioZone
	label rune
}

type sourceMarker struct {
	src   engine.SpatialSoundSource
	label rune
}

type Demo struct {
	screen tcell.Screen
	eng    *engine.Engine
	rate   beep.SampleRate

	player  vmath.Vec3
	zones   []zoneMarker
	sources []sourceMarker

	stopWatch func()
	status    string
}

func NewDemo(configPath string, watch bool) (*Demo, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	eng, err := engine.New(engine.WithSampleRate(cfg.SampleRate))
	if err != nil {
		screen.Fini()
		return nil, err
	}
	cfg.Apply(eng)

	d := &Demo{
		screen: screen,
		eng:    eng,
		rate:   beep.SampleRate(cfg.SampleRate),
		player: vmath.Vec3{X: 8, Y: 6},
		status: "exploring",
	}
	d.buildLevel()

	eng.SetOcclusionCallback(wallOcclusion)
	eng.UpdatePlayerPosition(d.player)

	if watch && configPath != "" {
		stop, err := config.Watch(configPath, eng, nil)
		if err != nil {
			log.Printf("config watch unavailable: %v", err)
		} else {
			d.stopWatch = stop
		}
	}
	return d, nil
}

// buildLevel registers the hard-coded zones and sources
func (d *Demo) buildLevel() {
	zones := []zoneMarker{
		{engine.AudioZone{
			ID: "dock", Category: core.EnvStation,
			Position: vmath.Vec3{X: 8, Y: 6}, Radius: 9, Indoor: true,
		}, 'S'},
		{engine.AudioZone{
			ID: "crags", Category: core.EnvSurface,
			Position: vmath.Vec3{X: 34, Y: 6}, Radius: 9, HasRadiation: true,
		}, 'R'},
		{engine.AudioZone{
			ID: "hive", Category: core.EnvHive,
			Position: vmath.Vec3{X: 8, Y: 18}, Radius: 8, Indoor: true, HighThreat: true,
		}, 'H'},
		{engine.AudioZone{
			ID: "pad", Category: core.EnvExtraction,
			Position: vmath.Vec3{X: 34, Y: 18}, Radius: 8,
		}, 'E'},
	}
	for _, zm := range zones {
		if err := d.eng.AddZone(zm.zone); err != nil {
			log.Printf("zone %s: %v", zm.zone.ID, err)
			continue
		}
		d.zones = append(d.zones, zm)
	}

	sources := []sourceMarker{
		{engine.SpatialSoundSource{
			ID: "pump", Type: core.SourceMachinery,
			Position: vmath.Vec3{X: 12, Y: 4}, MaxDistance: 14,
			Volume: 0.7, Active: true, Occludable: true,
		}, 'M'},
		{engine.SpatialSoundSource{
			ID: "vent", Type: core.SourceVent,
			Position: vmath.Vec3{X: 30, Y: 9}, MaxDistance: 10,
			Volume: 0.5, Active: true, Occludable: true,
		}, 'V'},
		{engine.SpatialSoundSource{
			ID: "drip", Type: core.SourceDrip,
			Position: vmath.Vec3{X: 6, Y: 20}, MaxDistance: 12,
			Volume: 0.6, Interval: 2 * time.Second, Active: true,
		}, 'D'},
		{engine.SpatialSoundSource{
			ID: "beacon", Type: core.SourceBeacon,
			Position: vmath.Vec3{X: 36, Y: 20}, MaxDistance: 18,
			Volume: 0.5, Interval: 3 * time.Second, Active: true,
		}, 'B'},
	}
	for _, sm := range sources {
		if err := d.eng.AddSpatialSource(sm.src); err != nil {
			log.Printf("source %s: %v", sm.src.ID, err)
			continue
		}
		d.sources = append(d.sources, sm)
	}
}

// wallOcclusion blocks sound crossing the wall except through the gap
func wallOcclusion(source, listener vmath.Vec3) float64 {
	if (source.X < wallX) == (listener.X < wallX) {
		return 0
	}
	// Crossing through the gap stays clear
	midY := (source.Y + listener.Y) / 2
	if midY >= wallGapY && midY <= wallGapY2 {
		return 0
	}
	return 1
}

func (d *Demo) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		switch ev.Rune() {
		case 'q':
			return false
		case 'h':
			d.move(-1, 0)
		case 'l':
			d.move(1, 0)
		case 'k':
			d.move(0, -1)
		case 'j':
			d.move(0, 1)
		case 'c':
			inCombat := !d.eng.InCombat()
			d.eng.SetCombatState(inCombat)
			if inCombat {
				d.status = "combat"
			} else {
				d.status = "exploring"
			}
		case '1':
			d.eng.SetMusicIntensity(core.IntensityAmbient)
		case '2':
			d.eng.SetMusicIntensity(core.IntensityAlert)
		case '3':
			d.eng.SetMusicIntensity(core.IntensityCombat)
		case '4':
			d.eng.SetMusicIntensity(core.IntensityBoss)
		case 'x':
			d.eng.PlayEmergencyKlaxon(0)
		case 'f':
			d.eng.PlayOneShot(sfx.WeaponFire(d.rate))
		case ' ':
			d.eng.PlayOneShot(sfx.Footstep(d.rate))
		case 'o':
			d.eng.SetOcclusionEnabled(true)
		case 'O':
			d.eng.SetOcclusionEnabled(false)
		case '+', '=':
			d.eng.SetMasterVolume(d.eng.MasterVolume() + 0.1)
		case '-':
			d.eng.SetMasterVolume(d.eng.MasterVolume() - 0.1)
		}

	case *tcell.EventResize:
		d.screen.Sync()
	}
	return true
}

func (d *Demo) move(dx, dy float64) {
	d.player.X += dx
	d.player.Y += dy
	if d.player.X < 0 {
		d.player.X = 0
	}
	if d.player.Y < 0 {
		d.player.Y = 0
	}
	d.eng.PlayOneShot(sfx.Footstep(d.rate))
}

func (d *Demo) draw() {
	d.screen.Clear()

	// Zones as dim circles
	for _, zm := range d.zones {
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		drawCircle(d.screen, zm.zone.Position, zm.zone.Radius, style)
		d.screen.SetContent(int(zm.zone.Position.X), int(zm.zone.Position.Y),
			zm.label, nil, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}

	// The wall
	wallStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for y := 0; y < 24; y++ {
		if float64(y) >= wallGapY && float64(y) <= wallGapY2 {
			continue
		}
		d.screen.SetContent(int(wallX), y, '|', nil, wallStyle)
	}

	// Sources, bright when audible
	for _, sm := range d.sources {
		style := tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
		if gain, ok := d.eng.SourceGain(sm.src.ID); ok && gain > 0.01 {
			style = tcell.StyleDefault.Foreground(tcell.ColorAqua)
		}
		d.screen.SetContent(int(sm.src.Position.X), int(sm.src.Position.Y),
			sm.label, nil, style)
	}

	// The listener
	d.screen.SetContent(int(d.player.X), int(d.player.Y), '@', nil,
		tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	d.drawHUD()
	d.screen.Show()
}

func (d *Demo) drawHUD() {
	stats := d.eng.Stats()
	lines := []string{
		fmt.Sprintf("env: %-10s zone: %-8s mode: %-9s music: %s",
			d.eng.CurrentEnvironment(), orDash(d.eng.ActiveZoneID()),
			d.status, d.eng.MusicIntensity()),
		fmt.Sprintf("vol: %.1f  layers: %d  sources: %d  tasks: %d  transitions: %d",
			d.eng.MasterVolume(), stats.ActiveLayers, stats.SpatialSources,
			stats.PendingTasks, stats.Transitions),
		"hjkl move | c combat | 1-4 music | x klaxon | f fire | o/O occlusion | +/- vol | q quit",
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	_, h := d.screen.Size()
	for i, line := range lines {
		drawText(d.screen, 0, h-len(lines)+i, line, style)
	}
}

func (d *Demo) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			events <- d.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-events:
			if !d.handleInput(ev) {
				return
			}
		case <-ticker.C:
			d.eng.UpdatePlayerPosition(d.player)
			d.draw()
		}
	}
}

func (d *Demo) cleanup() {
	if d.stopWatch != nil {
		d.stopWatch()
	}
	d.eng.Dispose()
	d.screen.Fini()
}

func drawCircle(s tcell.Screen, center vmath.Vec3, radius float64, style tcell.Style) {
	steps := int(radius * 8)
	for i := 0; i < steps; i++ {
		angle := float64(i) / float64(steps) * 2 * math.Pi
		x := int(center.X + radius*math.Cos(angle))
		y := int(center.Y + radius*math.Sin(angle)*0.6)
		if x >= 0 && y >= 0 {
			s.SetContent(x, y, '·', nil, style)
		}
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func main() {
	configPath := flag.String("config", "", "path to JSON config file")
	watch := flag.Bool("watch", false, "live-reload the config file")
	flag.Parse()

	demo, err := NewDemo(*configPath, *watch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer demo.cleanup()

	demo.run()
}
