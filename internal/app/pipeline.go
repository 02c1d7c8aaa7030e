package app

import (
	"fmt"
	"log"
	"time"

	"github.com/arcwand/spellcaster/internal/hook"
	"github.com/arcwand/spellcaster/internal/spellbook"
)

// runPipeline is the frame loop: read a frame, locate the wand tip, feed
// the segmenter, and classify each completed gesture.
func (a *App) runPipeline(stopCh chan struct{}) {
	fps := a.camera.FPS()
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	readErrors := 0

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				// Discard any gesture in progress; the segmenter is
				// only ever touched from this goroutine.
				a.segmenter.Reset()
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				readErrors++
				if readErrors >= maxConsecutiveReadErrors {
					select {
					case a.errCh <- fmt.Errorf("camera read failed %d times in a row: %w", readErrors, err):
					default:
					}
					return
				}
				continue
			}
			readErrors = 0

			pt, err := a.detector.Detect(frame)
			frame.Close()
			if err != nil {
				log.Printf("Error detecting wand tip: %v", err)
				continue
			}

			// A nil point is still an observation: it advances the
			// timeout that closes the gesture.
			path := a.segmenter.Observe(pt)
			if path == nil {
				continue
			}

			recognizer := a.Recognizer()
			if recognizer == nil {
				continue
			}

			result := recognizer.Recognize(path)
			if result == nil {
				log.Printf("Gesture discarded: %d points, no confident match", len(path))
				continue
			}

			spell, ok := a.book.Get(result.Label)
			if !ok {
				log.Printf("Classifier returned unknown spell label %q", result.Label)
				continue
			}

			log.Printf("Spell cast: %s (%s, confidence %.3f)", spell.Name, spell.Incantation, result.Confidence)
			a.dispatch(spell, result.Confidence)
		}
	}
}

// dispatch fans a recognized spell out to the sinks and the hook runner.
func (a *App) dispatch(spell spellbook.Spell, confidence float64) {
	for _, sink := range a.sinks {
		sink.Publish(spell, confidence)
	}

	if a.hooks != nil && a.hooks.Has(spell.Key) {
		ev := &hook.Event{
			Spell:       spell.Key,
			Name:        spell.Name,
			Incantation: spell.Incantation,
			Confidence:  confidence,
			Timestamp:   time.Now().UnixMilli(),
		}
		go func() {
			if err := a.hooks.Run(ev); err != nil {
				log.Printf("Hook for %s failed: %v", ev.Spell, err)
			}
		}()
	}
}
