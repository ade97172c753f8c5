package sink

import "firestige.xyz/burstgen/internal/schedule"

// Multi fans events out to several emitters in order and stops at the
// first error.
type Multi []schedule.Emitter

func (m Multi) EmitFrame(ev *schedule.FrameEvent) error {
	for _, e := range m {
		if err := e.EmitFrame(ev); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) EmitGap(ev *schedule.GapEvent) error {
	for _, e := range m {
		if err := e.EmitGap(ev); err != nil {
			return err
		}
	}
	return nil
}
