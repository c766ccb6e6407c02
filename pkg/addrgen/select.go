package addrgen

import (
	"os/exec"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
)

// SelectOpts drives the choice of the converter of a generation run.
type SelectOpts struct {
	Network            *chaincfg.Params
	NoAccelerator      bool
	AcceleratorPath    string
	AcceleratorTimeout time.Duration
	OnFallback         func(err error)
}

// SelectConverter picks the converter for a generation run. The accelerator
// is preferred when enabled and found on the system, the curve converter is
// used otherwise.
func SelectConverter(opts SelectOpts) AddressConverter {
	curve := NewCurveConverter(opts.Network)
	if opts.NoAccelerator {
		return curve
	}

	accelerator, err := NewAcceleratedConverter(AcceleratorOpts{
		Path:       opts.AcceleratorPath,
		Timeout:    opts.AcceleratorTimeout,
		Network:    opts.Network,
		OnFallback: opts.OnFallback,
	})
	if err != nil {
		log.WithError(err).Warn("address accelerator disabled")
		return curve
	}

	if _, err := exec.LookPath(accelerator.path); err != nil {
		log.Warnf(
			"%s: %s not found, using %s converter. Install vanitygen's keyconv "+
				"to speed up address generation",
			ErrAcceleratorUnavailable, accelerator.path, curve.Name(),
		)
		return curve
	}

	log.Debugf("using address accelerator %s", accelerator.path)
	return accelerator
}
