package core

/*------------------------------------------------------------------
 *
 * Purpose:	RunResult: the record produced by one C6 orchestrator
 *		run, and the input options that shape it.
 *
 *------------------------------------------------------------------*/

import "github.com/charmbracelet/log"

// Variant selects which ARQ state machine RunOnce drives.
type Variant string

const (
	VariantSnW Variant = "snw"
	VariantGBN Variant = "gbn"
)

// RunOptions configures one RunOnce call (spec.md section 4.6).
type RunOptions struct {
	Variant Variant

	MaxPayload int
	TimeoutMs  int64
	MaxRetries int
	Window     int // GBN only; ignored for SnW

	DropData    float64
	DropAck     float64
	CorruptData float64
	CorruptAck  float64
	DelayMs     int64

	Seed  int64
	MsgID uint16

	// Transducer drives the opaque PHY hop, with ASCII armoring. Nil
	// puts frame bytes straight onto the channels: no armoring and no
	// phy-time accounting.
	Transducer Transducer

	// Clock selects wall-clock or virtual-time advancement. Nil
	// selects VirtualClock.
	Clock Clock

	// TrackPhyTime enables phy_seconds/virtual_seconds accounting.
	TrackPhyTime bool

	// ScenarioLabel is carried through unchanged for reporting; it has
	// no effect on protocol behavior.
	ScenarioLabel string

	Log *log.Logger
}

// RunResult reports the outcome of one RunOnce call (spec.md section
// 4.6), extended with variant/seed/scenario bookkeeping useful to a
// benchmark grid (SPEC_FULL.md section 3).
type RunResult struct {
	OK           bool
	WallSeconds  float64
	GoodputBps   float64
	FramesTotal  int
	RetriesTotal int // SnW
	TimeoutsTotal int // GBN
	CRCFailTotal int
	DataSent     int
	DataDropped  int
	AckSent      int
	AckDropped   int

	PhySeconds        float64
	VirtualSeconds    float64
	VirtualGoodputBps float64

	Variant       Variant
	Seed          int64
	ScenarioLabel string

	Payload    []byte
	Reassembled []byte
}
