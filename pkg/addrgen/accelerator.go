package addrgen

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/keygen/pkg/circuitbreaker"
	"github.com/tdex-network/keygen/pkg/wif"
)

const (
	// DefaultAcceleratorPath is the name of the external address conversion
	// helper shipped with vanitygen.
	DefaultAcceleratorPath = "keyconv"
	// DefaultAcceleratorTimeout bounds every helper invocation.
	DefaultAcceleratorTimeout = 5 * time.Second
	// DefaultAcceleratorVerifyInterval is the number of conversions between
	// two cross-checks of the helper output.
	DefaultAcceleratorVerifyInterval = 100

	acceleratorAddressField = "Address:"
)

// AcceleratorOpts configures an AcceleratedConverter.
type AcceleratorOpts struct {
	Path    string
	Timeout time.Duration
	Network *chaincfg.Params
	// VerifyInterval makes every VerifyInterval-th result be cross-checked
	// against the curve converter.
	VerifyInterval uint64
	// OnFallback, if defined, is called every time a key is converted by the
	// curve converter in place of the accelerator.
	OnFallback func(err error)
}

func (o *AcceleratorOpts) validate() error {
	if o.Network == nil {
		return ErrNullNetwork
	}
	if o.Timeout < 0 {
		return ErrInvalidAcceleratorTimeout
	}
	if o.Path == "" {
		o.Path = DefaultAcceleratorPath
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultAcceleratorTimeout
	}
	if o.VerifyInterval == 0 {
		o.VerifyInterval = DefaultAcceleratorVerifyInterval
	}
	return nil
}

// AcceleratedConverter delegates address derivation to an external helper
// process, invoked with the WIF of the key as sole argument and expected to
// print an "Address: <addr>" line.
// The first result of each compression mode, and every VerifyInterval-th
// result after that, is cross-checked against the curve converter. After the
// first failure of any kind the accelerator is disabled for the rest of the
// run and every key is converted in process.
type AcceleratedConverter struct {
	path           string
	timeout        time.Duration
	net            *chaincfg.Params
	verifyInterval uint64
	onFallback     func(err error)

	curve       *CurveConverter
	breaker     *gobreaker.CircuitBreaker
	conversions atomic.Uint64
	verified    [2]atomic.Bool
	advisory    sync.Once
}

// NewAcceleratedConverter returns a converter backed by the helper at
// opts.Path. The helper is not looked up until the first conversion.
func NewAcceleratedConverter(opts AcceleratorOpts) (*AcceleratedConverter, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &AcceleratedConverter{
		path:           opts.Path,
		timeout:        opts.Timeout,
		net:            opts.Network,
		verifyInterval: opts.VerifyInterval,
		onFallback:     opts.OnFallback,
		curve:          NewCurveConverter(opts.Network),
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Opts{
			Name:                   "accelerator",
			MaxConsecutiveFailures: 1,
		}),
	}, nil
}

func (a *AcceleratedConverter) Name() string {
	return a.path
}

// Disabled tells whether the accelerator has been switched off after a
// failure.
func (a *AcceleratedConverter) Disabled() bool {
	return a.breaker.State() == gobreaker.StateOpen
}

func (a *AcceleratedConverter) Convert(
	ctx context.Context, secret []byte, compressed bool,
) (string, error) {
	if err := validateSecret(secret); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result, err := a.breaker.Execute(func() (interface{}, error) {
		return a.convert(ctx, secret, compressed)
	})
	if err == nil {
		return result.(string), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	a.fallback(err)
	return a.curve.Convert(ctx, secret, compressed)
}

func (a *AcceleratedConverter) convert(
	ctx context.Context, secret []byte, compressed bool,
) (string, error) {
	wifStr, err := wif.Encode(secret, compressed, a.net)
	if err != nil {
		return "", err
	}

	addr, err := a.run(ctx, wifStr)
	if err != nil {
		return "", err
	}

	verified := &a.verified[compressionMode(compressed)]
	n := a.conversions.Add(1)
	if !verified.Load() || n%a.verifyInterval == 0 {
		expected, err := a.curve.Convert(ctx, secret, compressed)
		if err != nil {
			return "", err
		}
		if addr != expected {
			return "", fmt.Errorf(
				"%w: got %s, expected %s", ErrAcceleratorMismatch, addr, expected,
			)
		}
		verified.Store(true)
	}

	return addr, nil
}

func compressionMode(compressed bool) int {
	if compressed {
		return 1
	}
	return 0
}

func (a *AcceleratedConverter) run(ctx context.Context, wifStr string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	stdout := &bytes.Buffer{}
	cmd := exec.CommandContext(ctx, a.path, wifStr)
	cmd.Stdout = stdout

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) ||
			errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("%w: %s", ErrAcceleratorUnavailable, err)
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", ErrAcceleratorTimeout, a.timeout)
		}
		return "", fmt.Errorf("%w: %s", ErrAcceleratorFailed, err)
	}

	addr, err := parseAcceleratorOutput(stdout.Bytes())
	if err != nil {
		return "", err
	}

	decoded, err := btcutil.DecodeAddress(addr, a.net)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedAcceleratorOutput, err)
	}
	if _, ok := decoded.(*btcutil.AddressPubKeyHash); !ok || !decoded.IsForNet(a.net) {
		return "", fmt.Errorf(
			"%w: %s is not a %s p2pkh address",
			ErrMalformedAcceleratorOutput, addr, a.net.Name,
		)
	}
	return addr, nil
}

func (a *AcceleratedConverter) fallback(err error) {
	a.advisory.Do(func() {
		log.WithError(err).Warnf(
			"address accelerator %s disabled, falling back to %s converter. "+
				"Install vanitygen's keyconv to speed up address generation",
			a.path, a.curve.Name(),
		)
	})
	if a.onFallback != nil {
		a.onFallback(err)
	}
}

func parseAcceleratorOutput(out []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 2 && fields[0] == acceleratorAddressField {
			return fields[1], nil
		}
	}
	return "", fmt.Errorf(
		"%w: missing %q line", ErrMalformedAcceleratorOutput, acceleratorAddressField,
	)
}
