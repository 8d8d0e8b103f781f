// Package persistence stores recorded block samples.
package persistence

import (
	"errors"

	"ising-mc/internal/ising"
)

// SampleWriter receives samples as the simulation emits them.
type SampleWriter interface {
	WriteSample(ising.Sample) error
	Flush() error
	Close() error
}

type multiWriter struct {
	writers []SampleWriter
}

// Multi fans each sample out to every writer. Nil writers are skipped.
func Multi(writers ...SampleWriter) SampleWriter {
	m := &multiWriter{}
	for _, w := range writers {
		if w != nil {
			m.writers = append(m.writers, w)
		}
	}
	return m
}

func (m *multiWriter) WriteSample(s ising.Sample) error {
	for _, w := range m.writers {
		if err := w.WriteSample(s); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiWriter) Flush() error {
	var errs []error
	for _, w := range m.writers {
		errs = append(errs, w.Flush())
	}
	return errors.Join(errs...)
}

func (m *multiWriter) Close() error {
	var errs []error
	for _, w := range m.writers {
		errs = append(errs, w.Close())
	}
	return errors.Join(errs...)
}

// Memory keeps samples in a slice.
type Memory struct {
	Samples []ising.Sample
}

// WriteSample appends s to Samples.
func (m *Memory) WriteSample(s ising.Sample) error {
	m.Samples = append(m.Samples, s)
	return nil
}

// Flush is a no-op.
func (m *Memory) Flush() error { return nil }

// Close is a no-op.
func (m *Memory) Close() error { return nil }
