// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command quicio-echo is a minimal UDP endpoint built on package
// reactor: every datagram it receives is retransmitted to its sender
// unchanged. It exists to exercise the full packet I/O core
// (socket, ring, reactor, observe, config) end to end, not as a
// protocol implementation.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"code.hybscloud.com/quicio/config"
	"code.hybscloud.com/quicio/inet"
	"code.hybscloud.com/quicio/observe"
	"code.hybscloud.com/quicio/packet"
	"code.hybscloud.com/quicio/queue"
	"code.hybscloud.com/quicio/reactor"
	"code.hybscloud.com/quicio/reactor/clock"
	"code.hybscloud.com/quicio/ring"
	"code.hybscloud.com/quicio/socket"
)

const ringSlots = 256

func main() {
	fs := config.FlagSet("quicio-echo", config.FromEnv())
	fs.String("listen", "127.0.0.1:4433", "address to bind")
	fs.String("metrics", "127.0.0.1:9433", "Prometheus /metrics listen address")
	if err := fs.Parse(os.Args[1:]); err != nil {
		panic(err)
	}
	cfg := config.Apply(fs)
	addr := fs.GetString("listen")
	metricsAddr := fs.GetString("metrics")

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("cmd", "quicio-echo").Logger()

	reg := prometheus.NewRegistry()
	sub := observe.NewPrometheusSubscriber(reg, log)

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			log.Warn().Err(err).Msg("metrics server stopped")
		}
	}()

	conn, err := socket.Bind("udp", addr, socket.Options{
		ReusePort: cfg.ReusePort,
		GSO:       cfg.Features.GSO,
		GRO:       cfg.Features.GRO,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("bind failed")
	}
	defer conn.Close()

	sub.OnPlatformFeatureConfigured(observe.PlatformFeatureConfigured{
		MaxMTU: cfg.MaxMTU,
		GSO:    cfg.Features.GSO,
		GRO:    cfg.Features.GRO,
		ECN:    true,
	})

	unfilledRX, filledRX := ring.Pair(uint16(cfg.MaxMTU), ringSlots)
	unfilledTX, filledTX := ring.Pair(uint16(cfg.MaxMTU), ringSlots)

	ep := newEchoEndpoint(sub)
	ep.SetMaxMTU(cfg.MaxMTU)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); pumpRx(ctx, conn, unfilledRX, log) }()
	go func() { defer wg.Done(); pumpTx(ctx, conn, filledTX, log) }()
	go func() { defer wg.Done(); statsTicker(ctx, ep) }()

	clk := clock.NewCached(10 * time.Millisecond)
	defer clk.Stop()

	log.Info().Str("addr", conn.LocalAddr().String()).Msg("listening")
	if err := reactor.Loop(ctx, clk, filledRX, filledRX, unfilledTX, unfilledTX, ep); err != nil {
		log.Info().Err(err).Msg("loop stopped")
	}

	unfilledRX.Close()
	filledTX.Close()
	ep.Close()
	wg.Wait()
}

// statsTicker requests an application wakeup every five seconds so the
// event loop periodically reports a LoopWakeup with Wakeup=true even
// when the endpoint is otherwise idle, exercising package queue's
// Wakeup alongside the socket-driven RX/TX signals.
func statsTicker(ctx context.Context, ep *echoEndpoint) {
	t := time.NewTicker(5 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			ep.wakeup.Request()
		}
	}
}

// pumpRx drains datagrams off the wire into unfilledRX as fast as the
// kernel delivers them. Grounded on socket.Rx's single-entry retry
// contract: a transient error simply means nothing is pending right
// now, so the pump backs off briefly rather than spinning.
//
// TODO: block on the runtime netpoller via conn's raw syscall.Conn
// instead of a fixed backoff, once a read-readiness hook is exposed
// from package socket.
func pumpRx(ctx context.Context, conn *socket.Conn, u *ring.Unfilled, log zerolog.Logger) {
	rx := socket.NewRx(conn)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := rx.Apply(u); err != nil {
			log.Warn().Err(err).Msg("rx pump stopped")
			return
		}
		time.Sleep(time.Millisecond)
	}
}

// pumpTx drains filledTX onto the wire as fast as the kernel accepts
// datagrams.
func pumpTx(ctx context.Context, conn *socket.Conn, f *ring.Filled, log zerolog.Logger) {
	tx := socket.NewTx(conn)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := tx.Apply(f); err != nil {
			log.Warn().Err(err).Msg("tx pump stopped")
			return
		}
		time.Sleep(time.Millisecond)
	}
}

// echoMessage is the packet.Message wrapping one segment queued for
// retransmission to its original sender.
type echoMessage struct {
	handle inet.Handle
	body   []byte
}

func (m echoMessage) PathHandle() inet.Handle              { return m.handle }
func (m echoMessage) ECN() inet.ECN                        { return inet.NotECT }
func (m echoMessage) CanGSO(segSize, segCount uint16) bool { return false }
func (m echoMessage) WritePayload(buf []byte, segmentIndex int) (int, error) {
	return copy(buf, m.body), nil
}

// echoEndpoint implements reactor.Endpoint: every received segment is
// queued for retransmission back to its sender. It has no timers; its
// only application wakeup is the periodic statsTicker.
type echoEndpoint struct {
	mu     sync.Mutex
	outbox []echoMessage
	sub    observe.Subscriber

	wakeup *queue.Wakeup
	ctx    context.Context
	cancel context.CancelFunc
}

func newEchoEndpoint(sub observe.Subscriber) *echoEndpoint {
	ctx, cancel := context.WithCancel(context.Background())
	return &echoEndpoint{sub: sub, wakeup: queue.NewWakeup(8), ctx: ctx, cancel: cancel}
}

// Close cancels the context any in-flight Wakeups call is blocked on.
func (ep *echoEndpoint) Close() { ep.cancel() }

// Wakeups spawns a fresh goroutine draining ep.wakeup, matching the
// "construct a fresh wakeup future every iteration" contract: any
// goroutine from an abandoned call simply blocks on the same
// long-lived ep.ctx until the next Count call observes the request.
func (ep *echoEndpoint) Wakeups(clk clock.Clock) (<-chan int, error) {
	ch := make(chan int, 1)
	go func() {
		n, err := ep.wakeup.Count(ep.ctx)
		if err != nil {
			return
		}
		ch <- n
	}()
	return ch, nil
}

func (ep *echoEndpoint) Receive(slice *ring.FilledSlice, clk clock.Clock) {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	for {
		e, ok := slice.Pop()
		if !ok {
			return
		}
		for {
			hdr, seg, ok := e.NextSegment()
			if !ok {
				break
			}
			reply := hdr.Path
			reply.Local, reply.Remote = inet.SocketAddress{}, hdr.Path.Remote
			body := make([]byte, len(seg))
			copy(body, seg)
			ep.outbox = append(ep.outbox, echoMessage{handle: reply, body: body})
		}
		if err := slice.Finish(e); err != nil {
			ep.sub.OnPacketDropped(observe.PacketDropped{Direction: "rx", Reason: err.Error()})
		}
	}
}

func (ep *echoEndpoint) Transmit(slice *ring.UnfilledSlice, clk clock.Clock) {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	for len(ep.outbox) > 0 {
		e, ok := slice.Pop()
		if !ok {
			return
		}
		msg := ep.outbox[0]
		if _, err := e.TryPush(msg); err != nil {
			ep.sub.OnPacketDropped(observe.PacketDropped{Direction: "tx", Reason: err.Error()})
		} else {
			ep.outbox = ep.outbox[1:]
		}
		if err := slice.PushFilled(e); err != nil {
			ep.sub.OnPacketDropped(observe.PacketDropped{Direction: "tx", Reason: err.Error()})
		}
	}
}

func (ep *echoEndpoint) Timeout() (time.Time, bool) { return time.Time{}, false }

func (ep *echoEndpoint) Subscriber() observe.Subscriber { return ep.sub }

func (ep *echoEndpoint) SetMaxMTU(mtu int) {}

var _ packet.Message = echoMessage{}
