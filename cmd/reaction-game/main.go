// Command reaction-game runs the four-lamp reaction game on GPIO lines or a
// serial button box.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sweeney/reaction-game/internal/game"
	"github.com/sweeney/reaction-game/internal/gpio"
	"github.com/sweeney/reaction-game/internal/mqtt"
	"github.com/sweeney/reaction-game/internal/status"
	"github.com/sweeney/reaction-game/internal/timing"
	"github.com/sweeney/reaction-game/internal/web"
)

// Backends selectable with -backend.
const (
	backendCdev   = "gpiocdev"
	backendRpio   = "rpio"
	backendSerial = "serial"
)

type options struct {
	backend    string
	chip       string
	serialPort string
	baud       int
	lamps      []int
	buttons    []int
	toneLine   int
	poll       time.Duration
	broker     string
	heartbeat  time.Duration
	httpAddr   string
	printState bool
}

func main() {
	backend := flag.String("backend", backendCdev, "Line backend: gpiocdev, rpio or serial")
	chip := flag.String("chip", "gpiochip0", "GPIO chip for the gpiocdev backend")
	serialPort := flag.String("serial-port", "/dev/ttyACM0", "Serial device for the serial backend")
	baud := flag.Int("baud", 115200, "Serial baud rate")
	lamps := flag.String("lamps", gpio.FormatLines(gpio.DefaultLamps), "Lamp lines in target order")
	buttons := flag.String("buttons", gpio.FormatLines(gpio.DefaultButtons), "Button lines in target order")
	tonePin := flag.Int("tone-pin", gpio.DefaultTone, "Tone output line")
	poll := flag.Duration("poll", 0, "Extra sleep between game ticks (0 = free running)")
	broker := flag.String("broker", "", "MQTT broker address (empty to disable telemetry)")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	httpAddr := flag.String("http", "", "HTTP status address (empty to disable)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logConsole := flag.Bool("log-console", false, "Human-readable log output")
	printState := flag.Bool("print-state", false, "Print debounced button states and exit")

	flag.Parse()

	logger, err := newLogger(os.Stderr, *logLevel, *logConsole)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	log.Logger = logger

	opts := options{
		backend:    *backend,
		chip:       *chip,
		serialPort: *serialPort,
		baud:       *baud,
		toneLine:   *tonePin,
		poll:       *poll,
		broker:     *broker,
		heartbeat:  *heartbeat,
		httpAddr:   *httpAddr,
		printState: *printState,
	}
	if opts.lamps, err = gpio.ParseLines(*lamps); err != nil {
		logger.Fatal().Err(err).Msg("parse -lamps")
	}
	if opts.buttons, err = gpio.ParseLines(*buttons); err != nil {
		logger.Fatal().Err(err).Msg("parse -buttons")
	}

	if err := run(opts, logger); err != nil {
		logger.Fatal().Err(err).Msg("fatal")
	}
}

// newLogger builds the root logger. Packages derive their own with
// logger.With().Str("module", ...).
func newLogger(w io.Writer, level string, console bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger(), nil
}

func run(opts options, logger zerolog.Logger) error {
	cfg, err := game.NewConfig(opts.lamps, opts.buttons, opts.toneLine)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	board, err := openBoard(opts, cfg)
	if err != nil {
		return fmt.Errorf("init %s: %w", opts.backend, err)
	}
	defer board.Close()

	lines := gpio.NewLogged(board, logger.With().Str("module", "gpio").Logger())
	clock := timing.NewReal()

	if opts.printState {
		printState(os.Stdout, lines, clock, cfg)
		return nil
	}

	var publisher mqtt.Publisher = mqtt.NopPublisher{}
	var mqttStatus mqtt.ConnectionStatus
	if opts.broker != "" {
		p, err := mqtt.NewRealPublisher(opts.broker, logger.With().Str("module", "mqtt").Logger())
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		defer p.Close()
		publisher, mqttStatus = p, p
	}

	tracker := status.NewTracker(clock.Now(), status.Config{
		Backend:     opts.backend,
		Lamps:       cfg.Lamps(),
		Buttons:     cfg.Buttons(),
		ToneLine:    cfg.ToneLine,
		PollMs:      opts.poll.Milliseconds(),
		HeartbeatMs: opts.heartbeat.Milliseconds(),
		Broker:      opts.broker,
		HTTPAddr:    opts.httpAddr,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	snap := tracker.Snapshot()
	startup := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startup); err != nil {
		logger.Error().Err(err).Msg("failed to publish startup event")
	}

	if opts.httpAddr != "" {
		srv := web.New(opts.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Str("module", "web").Msg("http server error")
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Info().Str("addr", opts.httpAddr).Msg("http status server listening")
	}

	machine := game.NewMachine(cfg, lines, clock, game.WithClock(clock.Now))
	scorer := game.NewScorer(clock.Now())

	logger.Info().
		Str("backend", opts.backend).
		Str("lamps", gpio.FormatLines(cfg.Lamps())).
		Str("buttons", gpio.FormatLines(cfg.Buttons())).
		Int("tone", cfg.ToneLine).
		Dur("poll", opts.poll).
		Dur("heartbeat", opts.heartbeat).
		Msg("started, press the lit button to play")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	l := &loop{
		machine:    machine,
		scorer:     scorer,
		publisher:  publisher,
		mqttStatus: mqttStatus,
		tracker:    tracker,
		delay:      clock,
		now:        clock.Now,
		heartbeat:  opts.heartbeat,
		poll:       opts.poll,
		logger:     logger.With().Str("module", "game").Logger(),
	}
	return runLoop(l, sigCh)
}

func openBoard(opts options, cfg game.Config) (gpio.Board, error) {
	inputs := cfg.Buttons()
	outputs := append(cfg.Lamps(), cfg.ToneLine)

	switch opts.backend {
	case backendCdev:
		return gpio.NewCdevBoard(opts.chip, inputs, outputs)
	case backendRpio:
		return gpio.NewRpioBoard(inputs, outputs)
	case backendSerial:
		return gpio.OpenSerialBoard(opts.serialPort, opts.baud, inputs, outputs)
	}
	return nil, fmt.Errorf("unknown backend %q", opts.backend)
}

// printState writes the debounced state of every button.
func printState(w io.Writer, lines game.Lines, delay game.Delayer, cfg game.Config) {
	d := game.NewDebouncer(lines, delay, game.SettleTime)
	for i, t := range cfg.Targets {
		state := "RELEASED"
		if d.IsPressed(t.Button) {
			state = "PRESSED"
		}
		fmt.Fprintf(w, "button %d (line %d): %s\n", i, t.Button, state)
	}
}

// loop is one game tick plus the telemetry around it. It runs on the game
// goroutine only.
type loop struct {
	machine    *game.Machine
	scorer     *game.Scorer
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
	delay      game.Delayer
	now        func() time.Time
	heartbeat  time.Duration
	poll       time.Duration
	logger     zerolog.Logger

	lastPhase game.Phase
}

// runLoop ticks the game until a signal arrives. The signal is only seen
// between ticks; a tone or penalty in progress finishes first.
func runLoop(l *loop, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			l.shutdown(s)
			return nil
		default:
		}
		l.tick()
	}
}

func (l *loop) tick() {
	events := l.machine.Step()
	for _, e := range events {
		l.logEvent(e)
		if err := l.publisher.Publish(e); err != nil {
			l.logger.Error().Err(err).Str("event", string(e.Type)).Msg("publish error")
		}
	}
	l.scorer.Record(events)

	if phase := l.machine.Phase(); len(events) > 0 || phase != l.lastPhase {
		l.lastPhase = phase
		l.updateTracker()
	}

	if hb := l.scorer.CheckHeartbeat(l.now(), l.heartbeat); hb != nil {
		l.logger.Info().
			Dur("uptime", hb.Uptime).
			Int("rounds", hb.Score.Counts.Rounds).
			Int("correct", hb.Score.Counts.Correct).
			Int("incorrect", hb.Score.Counts.Incorrect).
			Msg("heartbeat")

		if net := readNetworkInfo(); net != nil {
			l.tracker.SetNetwork(net)
		}
		l.updateTracker()
		snap := l.tracker.Snapshot()
		ev := mqtt.SystemEvent{
			Timestamp:  hb.Timestamp,
			Event:      "HEARTBEAT",
			RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
		}
		if err := l.publisher.PublishSystem(ev); err != nil {
			l.logger.Error().Err(err).Msg("heartbeat publish error")
		}
	}

	if l.poll > 0 {
		l.delay.Delay(l.poll)
	}
}

func (l *loop) logEvent(e game.Event) {
	ev := l.logger.Info().Str("event", string(e.Type)).Int("target", e.Target)
	switch e.Type {
	case game.EventCorrect:
		ev = ev.Dur("reaction", e.Reaction)
	case game.EventIncorrect:
		ev = ev.Int("pressed", e.Pressed)
	}
	ev.Msg("game event")
}

func (l *loop) updateTracker() {
	l.tracker.Update(l.machine.Phase(), l.machine.Current(), l.scorer.Started(), l.scorer.Score())
	if l.mqttStatus != nil {
		l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
	}
}

func (l *loop) shutdown(s os.Signal) {
	l.logger.Info().Str("signal", s.String()).Msg("shutting down")
	reason := signalName(s)

	l.updateTracker()
	snap := l.tracker.Snapshot()
	ev := mqtt.SystemEvent{
		Timestamp:  l.now(),
		Event:      "SHUTDOWN",
		Reason:     reason,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", reason),
	}
	if err := l.publisher.PublishSystem(ev); err != nil {
		l.logger.Error().Err(err).Msg("failed to publish shutdown event")
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
