// Command deskcycle turns exercise-cycle pedaling into virtual keyboard
// input. It polls the wheel sensors over GPIO, classifies cadence and
// direction, and holds W/S/Shift on a uinput keyboard accordingly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veraxus/deskcycle-controller/internal/config"
	"github.com/veraxus/deskcycle-controller/internal/gpio"
	"github.com/veraxus/deskcycle-controller/internal/keys"
	"github.com/veraxus/deskcycle-controller/internal/logic"
	"github.com/veraxus/deskcycle-controller/internal/mqtt"
	"github.com/veraxus/deskcycle-controller/internal/status"
	"github.com/veraxus/deskcycle-controller/internal/web"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	variant := flag.String("variant", "", `Sensor arrangement: "single" or "dual"`)
	chip := flag.String("chip", "", "GPIO chip name")
	pinA := flag.Int("pin-a", 0, "BCM pin number for sensor A")
	pinB := flag.Int("pin-b", 0, "BCM pin number for sensor B (dual variant)")
	pinLED := flag.Int("pin-led", 0, "BCM pin number for the activity LED (negative to disable)")
	poll := flag.Duration("poll", 0, "Sensor polling interval")
	debounce := flag.Duration("debounce", 0, "Debounce window")
	stopTimeout := flag.Duration("stop-timeout", 0, "Idle time before motion is declared stopped")
	fastThreshold := flag.Duration("fast-threshold", 0, "Revolution interval below which pace is FAST")
	hysteresis := flag.Float64("hysteresis", 0, "Margin for leaving FAST (must exceed 1.0)")
	tolerance := flag.Duration("tolerance", 0, "Dual-sensor simultaneity tolerance")
	broker := flag.String("broker", "", "MQTT broker address (empty disables telemetry)")
	heartbeat := flag.String("heartbeat", "", `Heartbeat interval, e.g. "15m" (empty disables)`)
	httpAddr := flag.String("http", "", "HTTP status address (empty disables)")
	keyboardName := flag.String("keyboard-name", "DeskCycle Keyboard", "Name of the virtual uinput device")
	dryRun := flag.Bool("dry-run", false, "Log key transitions instead of creating a uinput device")
	printState := flag.Bool("print-state", false, "Print current sensor levels and exit")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	// Flags set on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "variant":
			cfg.Variant = config.Variant(*variant)
		case "chip":
			cfg.Chip = *chip
		case "pin-a":
			cfg.PinA = *pinA
		case "pin-b":
			cfg.PinB = *pinB
		case "pin-led":
			cfg.PinLED = *pinLED
		case "poll":
			cfg.PollIntervalMS = int(poll.Milliseconds())
		case "debounce":
			cfg.DebounceWindowMS = int(debounce.Milliseconds())
		case "stop-timeout":
			cfg.StopTimeoutMS = int(stopTimeout.Milliseconds())
		case "fast-threshold":
			cfg.FastThresholdMS = int(fastThreshold.Milliseconds())
		case "hysteresis":
			cfg.HysteresisMargin = *hysteresis
		case "tolerance":
			cfg.SimultaneityToleranceMS = int(tolerance.Milliseconds())
		case "broker":
			cfg.Broker = *broker
		case "heartbeat":
			cfg.Heartbeat = *heartbeat
		case "http":
			cfg.HTTPAddr = *httpAddr
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("fatal: invalid configuration: %v", err)
	}

	if err := run(cfg, *keyboardName, *dryRun, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg config.Config, keyboardName string, dryRun, printState bool) error {
	pinB := cfg.PinB
	if cfg.Variant == config.VariantSingle {
		pinB = -1
	}

	reader, err := gpio.NewRealReader(cfg.Chip, cfg.PinA, pinB, cfg.PinLED)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer reader.Close()

	if printState {
		s, err := reader.Read()
		if err != nil {
			return fmt.Errorf("read gpio: %w", err)
		}
		if cfg.Variant == config.VariantDual {
			fmt.Printf("A: %s, B: %s\n", levelString(s.A), levelString(s.B))
		} else {
			fmt.Printf("A: %s\n", levelString(s.A))
		}
		return nil
	}

	var kb keys.Keyboard
	if dryRun {
		kb = keys.LogKeyboard{}
		log.Printf("dry run: key transitions are logged, no uinput device created")
	} else {
		uinput, err := keys.NewUinputKeyboard(keyboardName)
		if err != nil {
			return fmt.Errorf("create uinput keyboard: %w", err)
		}
		kb = uinput
	}
	defer kb.Close()
	mapper := keys.NewMapper(kb)

	var publisher mqtt.Publisher = mqtt.NopPublisher{}
	var mqttStatus mqtt.ConnectionStatus
	if cfg.Broker != "" {
		real, err := mqtt.NewRealPublisher(cfg.Broker)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		publisher = real
		mqttStatus = real
	}
	defer publisher.Close()

	// Status tracker comes before STARTUP so the snapshot is available.
	tracker := status.NewTracker(time.Now(), status.Config{
		Variant:          string(cfg.Variant),
		PollMs:           int64(cfg.PollIntervalMS),
		DebounceMs:       int64(cfg.DebounceWindowMS),
		StopTimeoutMs:    int64(cfg.StopTimeoutMS),
		FastThresholdMs:  int64(cfg.FastThresholdMS),
		HysteresisMargin: cfg.HysteresisMargin,
		Broker:           cfg.Broker,
		HTTPAddr:         cfg.HTTPAddr,
	})

	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	}

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTPAddr)
	}

	log.Printf("started: variant=%s poll=%v debounce=%v stop=%v fast=%v broker=%s",
		cfg.Variant, cfg.PollInterval(),
		time.Duration(cfg.DebounceWindowMS)*time.Millisecond,
		time.Duration(cfg.StopTimeoutMS)*time.Millisecond,
		time.Duration(cfg.FastThresholdMS)*time.Millisecond,
		cfg.Broker)

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(reader, mapper, publisher, mqttStatus, tracker,
		cfg.Pipeline(), cfg.HeartbeatInterval(), time.Now, ticker.C, sigCh)
}

// runLoop is the single-threaded polling loop. All pipeline state lives
// here; the tracker is the only thing other goroutines touch.
func runLoop(reader gpio.Reader, mapper *keys.Mapper, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, pipeCfg logic.Config, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	pipeline := logic.NewPipeline(pipeCfg)
	indicator, hasLED := reader.(gpio.Indicator)
	state := pipeline.State()
	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}

			// Release keys before anything else so a publish stall can
			// never leave W held in the focused game.
			if err := mapper.ReleaseAll(); err != nil {
				log.Printf("release keys: %v", err)
			}

			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				tracker.Update(pipeline.State(), mapper.HeldStrings(), pipeline.Counters())
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			}
			return nil

		case <-tick:
			t := now()
			raw, err := reader.Read()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}

			if hasLED {
				if err := indicator.SetLED(raw.A || raw.B); err != nil {
					log.Printf("led error: %v", err)
				}
			}

			next := pipeline.Process(logic.Sample{A: raw.A, B: raw.B, Time: t})

			if next != state {
				// Keys change before telemetry so the game always sees
				// the transition even when the broker is slow.
				if err := mapper.Apply(next); err != nil {
					log.Printf("key transition error: %v", err)
				}
				log.Printf("state: %s %s keys=%v", next.Pace, next.Direction, mapper.HeldStrings())

				if err := publisher.Publish(mqtt.MotionEvent{
					Timestamp: t,
					State:     next,
					Keys:      mapper.HeldStrings(),
				}); err != nil {
					log.Printf("publish error: %v", err)
				}
				state = next
			}

			if tracker != nil {
				tracker.Update(next, mapper.HeldStrings(), pipeline.Counters())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				hbEvent := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
					log.Printf("heartbeat: uptime=%v edges_a=%d edges_b=%d intervals=%d",
						snap.Uptime(), snap.Counts.EdgesA, snap.Counts.EdgesB, snap.Counts.Intervals)
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

func levelString(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}
