package simulator

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/triage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// Fill level at or above which a bin is flagged Critical and a
	// complaint is filed.
	criticalThreshold = 90

	// Per-tick fill increase range, percent. Max is exclusive.
	minFillDelta = 5
	maxFillDelta = 15
)

// BinStore is the bin persistence surface the simulator needs.
type BinStore interface {
	FindAll() ([]*models.Bin, error)
	UpdateFill(id string, fillLevel int, status string) error
}

// ComplaintStore files sensor-generated complaints.
type ComplaintStore interface {
	Create(complaint *models.Complaint) (*models.Complaint, error)
}

// Broadcaster pushes bin state changes to live dashboard clients.
type Broadcaster interface {
	BroadcastBinUpdate(bin *models.Bin)
}

// Simulator advances a fleet of smart bins on a fixed tick, standing in for
// real fill-level sensors. When a bin crosses the critical threshold it
// files exactly one overflow complaint attributed to the configured system
// actor; the persisted Critical status is the dedup guard until the bin is
// emptied.
type Simulator struct {
	bins        BinStore
	complaints  ComplaintStore
	broadcaster Broadcaster
	systemActor primitive.ObjectID
	rng         *rand.Rand
	interval    time.Duration
	binsPerTick int

	mu       sync.Mutex // serializes ticks
	stopChan chan struct{}
	stopOnce sync.Once
}

func New(bins BinStore, complaints ComplaintStore, broadcaster Broadcaster, systemActor primitive.ObjectID, interval time.Duration, binsPerTick int) *Simulator {
	return &Simulator{
		bins:        bins,
		complaints:  complaints,
		broadcaster: broadcaster,
		systemActor: systemActor,
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		interval:    interval,
		binsPerTick: binsPerTick,
		stopChan:    make(chan struct{}),
	}
}

// SetRand replaces the random source. Intended for tests.
func (s *Simulator) SetRand(rng *rand.Rand) {
	s.rng = rng
}

// Start launches the tick loop in a background goroutine.
func (s *Simulator) Start() {
	log.Printf("Bin simulator started (interval: %v, bins per tick: %d)", s.interval, s.binsPerTick)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Tick()
			case <-s.stopChan:
				log.Println("Bin simulator stopped")
				return
			}
		}
	}()
}

// Stop terminates the tick loop. Safe to call more than once.
func (s *Simulator) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// Tick performs one simulation pass: picks binsPerTick bins with
// replacement, advances each and files overflow complaints on threshold
// crossings. Ticks never overlap; a failure on one bin never aborts the
// rest of the pass.
func (s *Simulator) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.systemActor.IsZero() {
		log.Println("Simulation skipped: no system actor configured to attribute complaints")
		return
	}

	bins, err := s.bins.FindAll()
	if err != nil {
		log.Printf("Simulation error: failed to load bins: %v", err)
		return
	}
	if len(bins) == 0 {
		return
	}

	for i := 0; i < s.binsPerTick; i++ {
		// With replacement: the same bin may be picked twice in one pass.
		// The in-memory record is updated after each advance, so a second
		// pick compounds the fill and the Critical status still dedups.
		s.advanceBin(bins[s.rng.IntN(len(bins))])
	}
}

func (s *Simulator) advanceBin(bin *models.Bin) {
	delta := s.rng.IntN(maxFillDelta-minFillDelta) + minFillDelta
	level := bin.FillLevel + delta
	if level > 100 {
		level = 100
	}

	status := bin.Status
	crossed := level >= criticalThreshold && bin.Status != models.BinStatusCritical
	if crossed {
		status = models.BinStatusCritical
		if err := s.fileOverflowComplaint(bin, level); err != nil {
			// Keep the old status so the crossing re-arms and the
			// complaint is retried on a later tick with the updated level.
			log.Printf("Simulation error: failed to file complaint for bin %s: %v", bin.Code, err)
			status = bin.Status
		} else {
			log.Printf("IoT alert: complaint filed for bin %s at %d%%", bin.Code, level)
		}
	}

	if err := s.bins.UpdateFill(bin.ID.Hex(), level, status); err != nil {
		// The complaint above may already be filed. Losing the Critical
		// persist here means the next crossing files a second complaint;
		// the in-memory record is left untouched so the dedup guard stays
		// consistent with what is stored.
		log.Printf("Simulation error: failed to update bin %s: %v", bin.Code, err)
		return
	}

	bin.FillLevel = level
	bin.Status = status

	if s.broadcaster != nil {
		s.broadcaster.BroadcastBinUpdate(bin)
	}
}

func (s *Simulator) fileOverflowComplaint(bin *models.Bin, level int) error {
	now := time.Now()
	complaint := &models.Complaint{
		Title:       fmt.Sprintf("IoT Alert: Bin %s Overflow", bin.Code),
		Description: fmt.Sprintf("Automated sensor alert: bin at %s is %d%% full. Dispatch collection truck immediately.", bin.Location.Address, level),
		Category:    triage.CategoryGarbageDump,
		Severity:    models.SeverityCritical,
		Location:    bin.Location,
		Status:      models.StatusPending,
		CreatedBy:   s.systemActor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.complaints.Create(complaint)
	return err
}
