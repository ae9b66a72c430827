package report

import "time"

// Analyzer produces the analysis text for a class.
type Analyzer interface {
	Analyze(in Input) (string, error)
}

// Simulated stands in for a remote analysis model: it waits for Delay and
// then returns the locally generated report.
type Simulated struct {
	Delay time.Duration
}

func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{Delay: delay}
}

func (s *Simulated) Analyze(in Input) (string, error) {
	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}
	return Generate(in), nil
}
