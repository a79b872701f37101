// Package sim runs two chains connected by an echo channel and relays the
// packets described by a config.Config between them.
package sim

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	stdprometheus "github.com/prometheus/client_golang/prometheus"

	"github.com/tendermint/ibc/apps/echo"
	"github.com/tendermint/ibc/config"
	"github.com/tendermint/ibc/core"
	"github.com/tendermint/ibc/core/channel"
	"github.com/tendermint/ibc/core/events"
	"github.com/tendermint/ibc/core/handler"
	"github.com/tendermint/ibc/internal/chain"
	"github.com/tendermint/ibc/internal/relay"
	"github.com/tendermint/ibc/libs/log"
)

const relayerSigner = "ibcsim"

// Report summarises a run. It is written as TOML.
type Report struct {
	Packets PacketReport       `toml:"packets"`
	Metrics map[string]float64 `toml:"metrics,omitempty"`
	Chains  []ChainReport      `toml:"chain"`
}

type PacketReport struct {
	Sent         int `toml:"sent"`
	Received     int `toml:"received"`
	Acknowledged int `toml:"acknowledged"`
	TimedOut     int `toml:"timed_out"`
}

type ChainReport struct {
	ChainID   string        `toml:"chain_id"`
	Height    string        `toml:"height"`
	ClientID  string        `toml:"client_id"`
	ChannelID string        `toml:"channel_id"`
	Events    []EventRecord `toml:"event"`
}

type EventRecord struct {
	Type       string            `toml:"type"`
	Attributes map[string]string `toml:"attributes"`
}

// Simulator owns the two chains of a run.
type Simulator struct {
	conf    *config.Config
	logger  log.Logger
	metrics *handler.Metrics

	relayer      *relay.Relayer
	echoA, echoB *echo.Module
}

// NewSimulator creates both chains. Chains kept on disk start from an empty
// database.
func NewSimulator(conf *config.Config, logger log.Logger) (*Simulator, error) {
	s := &Simulator{conf: conf, logger: logger}
	if conf.Instrumentation.Prometheus {
		s.metrics = handler.PrometheusMetrics(conf.Instrumentation.Namespace)
	}

	s.echoA = echo.NewModule(logger)
	var opts []echo.Option
	if conf.Packets.AsyncAcks {
		opts = append(opts, echo.WithAsyncAcks())
	}
	s.echoB = echo.NewModule(logger, opts...)

	a, err := s.newChain(conf.ChainA, s.echoA)
	if err != nil {
		return nil, err
	}
	b, err := s.newChain(conf.ChainB, s.echoB)
	if err != nil {
		return nil, err
	}
	s.relayer = relay.NewRelayer(a, b, relayerSigner, logger)
	return s, nil
}

func (s *Simulator) newChain(cc *config.ChainConfig, module core.Module) (*chain.Chain, error) {
	cfg, err := cc.ToChain()
	if err != nil {
		return nil, err
	}
	if cc.DBBackend != "memdb" {
		if err := os.RemoveAll(filepath.Join(s.conf.DataDir(), cc.ChainID+".db")); err != nil {
			return nil, err
		}
	}
	db, err := config.DefaultDBProvider(&config.DBContext{ID: cc.ChainID, Config: s.conf, Chain: cc})
	if err != nil {
		return nil, err
	}

	router := core.NewPortRouter()
	if err := router.AddRoute(echo.PortID, module); err != nil {
		return nil, err
	}
	var opts []handler.HandlerOption
	if s.metrics != nil {
		opts = append(opts, handler.WithMetrics(s.metrics))
	}
	return chain.NewChain(cfg, db, handler.NewHandler(router, s.logger, opts...), s.logger)
}

// Run opens the channel, sends the configured packets from chain_a and
// relays them. Dropped packets are left to time out.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	r := s.relayer
	order, err := s.conf.Channel.Order()
	if err != nil {
		return nil, err
	}
	if err := r.Setup(echo.PortID, echo.PortID, order, echo.Version, time.Duration(s.conf.Channel.DelayPeriod)); err != nil {
		return nil, err
	}

	pc := s.conf.Packets
	packets := make([]channel.Packet, 0, pc.Count)
	for i := 0; i < pc.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		packet, err := s.send(i)
		if err != nil {
			return nil, err
		}
		packets = append(packets, packet)
	}

	relayed, dropped := packets[:pc.Count-pc.Dropped], packets[pc.Count-pc.Dropped:]
	for _, packet := range relayed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.relay(packet); err != nil {
			return nil, err
		}
	}
	for _, packet := range dropped {
		if err := s.timeout(packet); err != nil {
			return nil, err
		}
	}
	return s.report()
}

func (s *Simulator) send(i int) (channel.Packet, error) {
	r, pc := s.relayer, s.conf.Packets

	timeoutHeight := channel.TimeoutHeightNever()
	if pc.TimeoutBlocks > 0 {
		timeoutHeight = channel.TimeoutHeightAt(r.B.Chain.LatestHeight().Add(pc.TimeoutBlocks))
	}
	var timeoutTime time.Time
	if pc.TimeoutPeriod > 0 {
		header, err := r.B.Chain.LatestHeader()
		if err != nil {
			return channel.Packet{}, err
		}
		timeoutTime = header.Timestamp.Time().Add(time.Duration(pc.TimeoutPeriod))
	}
	return r.Send(r.A, []byte(fmt.Sprintf("packet-%d", i)), timeoutHeight, timeoutTime)
}

func (s *Simulator) relay(packet channel.Packet) error {
	r := s.relayer
	ack, err := r.RecvPacket(packet)
	switch {
	case errorsmod.IsOf(err, channel.ErrPacketTimeout):
		s.logger.Info("packet timed out before it was relayed", "sequence", packet.Sequence)
		return s.timeout(packet)
	case err != nil:
		return err
	case ack != nil:
		return r.AcknowledgePacket(packet, ack)
	}

	for _, pending := range s.echoB.TakePending() {
		ack, err := echo.Acknowledge(pending)
		if err != nil {
			return err
		}
		if _, err := r.B.Chain.WriteAcknowledgement(pending, ack); err != nil {
			return err
		}
		if err := r.AcknowledgePacket(pending, ack); err != nil {
			return err
		}
	}
	return nil
}

// timeout commits blocks on chain_b until packet has timed out there, then
// proves the timeout to chain_a.
func (s *Simulator) timeout(packet channel.Packet) error {
	b := s.relayer.B.Chain
	for {
		header, err := b.LatestHeader()
		if err != nil {
			return err
		}
		if packet.TimedOut(header.Timestamp, header.Height) {
			break
		}
		if _, err := b.Commit(); err != nil {
			return err
		}
	}
	return s.relayer.TimeoutPacket(packet, false)
}

func (s *Simulator) report() (*Report, error) {
	a, b := s.echoA.Stats(), s.echoB.Stats()
	rep := &Report{
		Packets: PacketReport{
			Sent:         s.conf.Packets.Count,
			Received:     b.Received,
			Acknowledged: a.Acknowledged,
			TimedOut:     a.TimedOut,
		},
	}
	for _, e := range []*relay.Endpoint{s.relayer.A, s.relayer.B} {
		rep.Chains = append(rep.Chains, ChainReport{
			ChainID:   e.Chain.ID().String(),
			Height:    e.Chain.LatestHeight().String(),
			ClientID:  e.ClientID.String(),
			ChannelID: e.ChannelID.String(),
			Events:    eventRecords(e.Chain.Events()),
		})
	}
	if s.metrics != nil {
		metrics, err := gatherCounters(s.conf.Instrumentation.Namespace)
		if err != nil {
			return nil, err
		}
		rep.Metrics = metrics
	}
	return rep, nil
}

func eventRecords(evs []events.Event) []EventRecord {
	out := make([]EventRecord, 0, len(evs))
	for _, ev := range evs {
		attrs := make(map[string]string)
		for _, attr := range ev.Attributes() {
			attrs[attr.Key] = attr.Value
		}
		out = append(out, EventRecord{Type: ev.EventType(), Attributes: attrs})
	}
	return out
}

// gatherCounters sums the counters registered under namespace by metric
// name.
func gatherCounters(namespace string) (map[string]float64, error) {
	families, err := stdprometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	prefix := namespace + "_"
	for _, family := range families {
		name := family.GetName()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		for _, m := range family.GetMetric() {
			if c := m.GetCounter(); c != nil {
				out[name] += c.GetValue()
			}
		}
	}
	return out, nil
}

// EventTypes returns the sorted distinct event types of a chain report.
func (c ChainReport) EventTypes() []string {
	seen := make(map[string]struct{})
	for _, ev := range c.Events {
		seen[ev.Type] = struct{}{}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
