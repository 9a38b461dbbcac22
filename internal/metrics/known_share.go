package metrics

import "github.com/san-kum/episim/internal/epidemic"

// KnownShare is the mean daily fraction of active cases that know they are
// infected. Days without active cases are skipped.
type KnownShare struct {
	name    string
	sum     float64
	samples int
}

func NewKnownShare() *KnownShare {
	return &KnownShare{name: "known_share"}
}

func (k *KnownShare) Name() string {
	return k.name
}

func (k *KnownShare) Observe(s epidemic.DaySnapshot) {
	if s.Infected == 0 {
		return
	}
	k.sum += float64(s.KnownInfected) / float64(s.Infected)
	k.samples++
}

func (k *KnownShare) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.sum / float64(k.samples)
}

func (k *KnownShare) Reset() {
	k.sum = 0
	k.samples = 0
}
