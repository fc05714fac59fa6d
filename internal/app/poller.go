package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mjdusa/etcher/internal/flashd"
	"github.com/mjdusa/etcher/internal/state"
)

const (
	defaultPollInterval = time.Second
	maxBackoff          = 30 * time.Second
)

// DaemonClient is the part of the daemon client the sync loops use.
type DaemonClient interface {
	flashd.StatusFetcher
	Stream(ctx context.Context, fn func(flashd.Status)) error
}

// syncer keeps the selection and flash stores in line with the daemon. The
// websocket stream carries flash progress; polling covers the drive list and
// stands in for the stream while it is down.
type syncer struct {
	selection *state.Selection
	flash     *state.Flash
	client    DaemonClient
	interval  time.Duration
	log       *logrus.Entry

	streaming atomic.Bool
}

// StartSync launches the poll and stream goroutines. It returns immediately.
func StartSync(ctx context.Context, sel *state.Selection, fl *state.Flash, client DaemonClient, interval time.Duration, log *logrus.Entry) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	s := &syncer{selection: sel, flash: fl, client: client, interval: interval, log: log}
	go s.pollLoop(ctx)
	go s.streamLoop(ctx)
}

func (s *syncer) pollLoop(ctx context.Context) {
	failures := 0
	for {
		if err := s.refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			failures++
			s.flash.RecordError(err)
			s.log.WithError(err).WithField("failures", failures).Debug("daemon poll failed")
		} else {
			failures = 0
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(calculateBackoff(failures, s.interval)):
		}
	}
}

// refresh fetches the drive list and, unless the stream is live, the flash
// status.
func (s *syncer) refresh(ctx context.Context) error {
	drives, err := s.client.FetchDrives(ctx)
	if err != nil {
		return fmt.Errorf("fetch drives: %w", err)
	}
	s.selection.SetAvailableDrives(drives)

	if s.streaming.Load() {
		return nil
	}
	status, err := s.client.FetchStatus(ctx)
	if err != nil {
		return fmt.Errorf("fetch status: %w", err)
	}
	s.flash.Apply(*status)
	return nil
}

func (s *syncer) streamLoop(ctx context.Context) {
	failures := 0
	for {
		err := s.client.Stream(ctx, func(st flashd.Status) {
			if !s.streaming.Swap(true) {
				s.log.Info("flash stream connected")
			}
			failures = 0
			s.flash.Apply(st)
		})
		s.streaming.Store(false)
		if ctx.Err() != nil {
			return
		}
		failures++
		s.log.WithError(err).WithField("failures", failures).Debug("flash stream unavailable, polling")

		select {
		case <-ctx.Done():
			return
		case <-time.After(calculateBackoff(failures, s.interval)):
		}
	}
}

// calculateBackoff doubles the interval per consecutive failure up to
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for range failures {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
