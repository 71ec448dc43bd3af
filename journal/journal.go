// Package journal implements a persistent sign journal that refuses to sign
// two different documents for the same account sequence.
package journal

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"github.com/akrylysov/pogreb"

	"github.com/oasisprotocol/deepspace/log"
	"github.com/oasisprotocol/deepspace/metrics"
	"github.com/oasisprotocol/deepspace/tx"
)

const moduleName = "journal"

// ErrConflict is returned when a different document was already signed for
// the same chain, account number and sequence.
var ErrConflict = errors.New("journal: conflicting sign request")

// Journal records the digest of every signed document, keyed by
// (chain_id, account_number, sequence).
type Journal struct {
	mu sync.Mutex
	db *pogreb.DB

	path    string
	logger  *log.Logger
	metrics *metrics.JournalMetrics // if nil, no metrics are emitted
}

// Open opens the journal at path, creating it if needed.
// `m` can be `nil`, in which case no metrics are emitted.
func Open(path string, logger *log.Logger, m *metrics.JournalMetrics) (*Journal, error) {
	j := &Journal{
		path:    path,
		logger:  logger.WithModule(moduleName),
		metrics: m,
	}
	cleanupBackups(path, j.logger)

	j.logger.Info("opening journal", "path", path)
	// -1 syncs after every write; a recorded slot must survive a crash.
	db, err := pogreb.Open(path, &pogreb.Options{BackgroundSyncInterval: -1})
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	j.db = db
	j.logger.Info("journal opened", "path", path, "entries", db.Count())
	return j, nil
}

// Key returns the journal key of a document. The chain id is length-prefixed
// so that no two slots share a key.
func Key(doc *tx.SignDoc) []byte {
	return []byte(fmt.Sprintf("%d:%s/%s/%s", len(doc.ChainID), doc.ChainID, doc.AccountNumber, doc.Sequence))
}

// Record checks the document against the journal and records it if its slot
// is free. Recording an identical document again succeeds.
func (j *Journal) Record(doc *tx.SignDoc) error {
	signBytes, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("sign doc: %w", err)
	}
	digest := sha256.Sum256(signBytes)
	key := Key(doc)

	j.mu.Lock()
	defer j.mu.Unlock()

	timer := j.timer("get")
	prev, err := j.db.Get(key)
	timer()
	if err != nil {
		j.count(doc.ChainID, metrics.JournalError)
		return fmt.Errorf("journal: get: %w", err)
	}
	if prev != nil {
		if bytes.Equal(prev, digest[:]) {
			j.count(doc.ChainID, metrics.JournalRepeat)
			j.logger.Debug("repeat sign request", "chain_id", doc.ChainID, "account_number", doc.AccountNumber, "sequence", doc.Sequence)
			return nil
		}
		j.count(doc.ChainID, metrics.JournalConflict)
		j.logger.Warn("refusing conflicting sign request",
			"chain_id", doc.ChainID,
			"account_number", doc.AccountNumber,
			"sequence", doc.Sequence,
			"recorded", fmt.Sprintf("%x", prev),
			"requested", fmt.Sprintf("%x", digest),
		)
		return fmt.Errorf("%w: chain %s account %s sequence %s", ErrConflict, doc.ChainID, doc.AccountNumber, doc.Sequence)
	}

	timer = j.timer("put")
	err = j.db.Put(key, digest[:])
	timer()
	if err != nil {
		j.count(doc.ChainID, metrics.JournalError)
		return fmt.Errorf("journal: put: %w", err)
	}
	j.count(doc.ChainID, metrics.JournalRecorded)
	return nil
}

// Sign records doc and then has s sign it. Nothing reaches the signer when
// the journal refuses the document.
func (j *Journal) Sign(ctx context.Context, doc *tx.SignDoc, s tx.Signer) (tx.Signature, error) {
	if err := j.Record(doc); err != nil {
		return tx.Signature{}, err
	}
	return doc.Sign(ctx, s)
}

// Count returns the number of recorded slots.
func (j *Journal) Count() uint32 {
	return j.db.Count()
}

// Close closes the underlying store.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.logger.Info("closing journal", "path", j.path)
	return j.db.Close()
}

func (j *Journal) count(chainID string, outcome metrics.JournalOutcome) {
	if j.metrics != nil {
		j.metrics.Checks(chainID, outcome).Inc()
	}
}

func (j *Journal) timer(operation string) func() {
	if j.metrics == nil {
		return func() {}
	}
	t := j.metrics.Latency(operation)
	return func() { t.ObserveDuration() }
}
