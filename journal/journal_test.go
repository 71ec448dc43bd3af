package journal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/deepspace/common"
	"github.com/oasisprotocol/deepspace/log"
	"github.com/oasisprotocol/deepspace/metrics"
	"github.com/oasisprotocol/deepspace/msg"
	"github.com/oasisprotocol/deepspace/tx"
)

type countingSigner struct {
	calls int
}

func (s *countingSigner) Sign(_ context.Context, _ []byte) ([]byte, []byte, error) {
	s.calls++
	return append([]byte{0x02}, bytes.Repeat([]byte{0xaa}, 32)...), bytes.Repeat([]byte{0x01}, 64), nil
}

func doc(t *testing.T, sequence uint64, memo string) *tx.SignDoc {
	d, err := tx.BuildSignDoc("columbus-5", 7, sequence, common.Fee{}, []msg.Msg{msg.Test("TestMsg1")}, memo)
	require.NoError(t, err)
	return d
}

func openJournal(t *testing.T, path string, m *metrics.JournalMetrics) *Journal {
	j, err := Open(path, log.NewNopLogger(), m)
	require.NoError(t, err)
	return j
}

func TestRecord(t *testing.T) {
	m := metrics.NewDefaultJournalMetrics("journal_test_record")
	j := openJournal(t, filepath.Join(t.TempDir(), "journal"), &m)
	defer j.Close()

	require.NoError(t, j.Record(doc(t, 1, "")))
	require.NoError(t, j.Record(doc(t, 1, "")))
	require.ErrorIs(t, j.Record(doc(t, 1, "other")), ErrConflict)
	require.NoError(t, j.Record(doc(t, 2, "other")))
	require.EqualValues(t, 2, j.Count())

	require.Equal(t, 2.0, testutil.ToFloat64(m.Checks("columbus-5", metrics.JournalRecorded)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Checks("columbus-5", metrics.JournalRepeat)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Checks("columbus-5", metrics.JournalConflict)))
}

func TestSignGuardsSigner(t *testing.T) {
	j := openJournal(t, filepath.Join(t.TempDir(), "journal"), nil)
	defer j.Close()

	s := &countingSigner{}
	sig, err := j.Sign(context.Background(), doc(t, 3, ""), s)
	require.NoError(t, err)
	require.Len(t, sig.Signature, tx.SignatureSize)
	require.Equal(t, 1, s.calls)

	_, err = j.Sign(context.Background(), doc(t, 3, "double"), s)
	require.ErrorIs(t, err, ErrConflict)
	require.Equal(t, 1, s.calls)
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal")
	j := openJournal(t, path, nil)
	require.NoError(t, j.Record(doc(t, 5, "")))
	require.NoError(t, j.Close())

	j = openJournal(t, path, nil)
	defer j.Close()
	require.EqualValues(t, 1, j.Count())
	require.NoError(t, j.Record(doc(t, 5, "")))
	require.ErrorIs(t, j.Record(doc(t, 5, "x")), ErrConflict)
}

func TestKeysDoNotCollide(t *testing.T) {
	a := &tx.SignDoc{ChainID: "a/1", AccountNumber: "2", Sequence: "3"}
	b := &tx.SignDoc{ChainID: "a", AccountNumber: "1/2", Sequence: "3"}
	require.NotEqual(t, Key(a), Key(b))
	require.Equal(t, "10:columbus-5/7/1", string(Key(doc(t, 1, ""))))
}

func TestCleanupBackups(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "main.pix.bac.bac")
	kept := filepath.Join(dir, "main.pix.bac")
	require.NoError(t, os.WriteFile(stale, nil, 0o600))
	require.NoError(t, os.WriteFile(kept, nil, 0o600))

	cleanupBackups(dir, log.NewNopLogger())

	_, err := os.Stat(stale)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(kept)
	require.NoError(t, err)
}
