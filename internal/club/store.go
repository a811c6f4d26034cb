package club

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/padel-ledger/internal/ledger"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db:   db,
		subs: make(map[int]chan ledger.Snapshot),
	}
}

const matchColumns = `id, date, team1_blob, team2_blob, score_team1, score_team2, winner, winner_label, comment, loaded_by, created_at, edit_history_blob, pending_confirmation, source_id`

// CreateMatch inserts a new match. An ID and creation time are assigned when
// the caller left them empty.
func (s *store) CreateMatch(match *ledger.Match) (string, error) {
	if match.ID == "" {
		match.ID = uuid.New().String()
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now().UTC()
	}

	team1Blob, team2Blob, historyBlob, err := encodeMatch(match)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	_, err = s.db.Exec(`INSERT INTO matches (`+matchColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		match.ID, match.Date, team1Blob, team2Blob, match.ScoreTeam1, match.ScoreTeam2,
		string(match.Winner), match.WinnerLabel, match.Comment, match.LoadedBy,
		match.CreatedAt.UnixMilli(), historyBlob, match.PendingConfirmation, match.SourceID,
	)
	s.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("failed to insert match %s: %w", match.ID, err)
	}

	log.Debug("Match created", "matchID", match.ID, "date", match.Date)
	s.broadcast()
	return match.ID, nil
}

// GetMatch returns the active match with the given ID.
func (s *store) GetMatch(matchID string) (*ledger.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, matchID)
	match, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
	}
	return match, nil
}

// EditMatch reads the match, passes it to apply and stores the result, all in
// one transaction under the write lock. Concurrent edits of the same match
// therefore each see the history left by the previous one. Errors from apply
// are returned unwrapped.
func (s *store) EditMatch(matchID string, apply func(ledger.Match) (ledger.Match, error)) (*ledger.Match, error) {
	s.mu.Lock()
	edited, err := s.editMatchLocked(matchID, apply)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	log.Debug("Match edited", "matchID", matchID, "entries", len(edited.EditHistory))
	s.broadcast()
	return edited, nil
}

func (s *store) editMatchLocked(matchID string, apply func(ledger.Match) (ledger.Match, error)) (*ledger.Match, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	original, err := scanMatch(tx.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read match %s: %w", matchID, err)
	}

	edited, err := apply(*original)
	if err != nil {
		return nil, err
	}
	edited.ID = original.ID
	if len(edited.EditHistory) < len(original.EditHistory) {
		return nil, fmt.Errorf("edit of match %s drops history entries", matchID)
	}

	team1Blob, team2Blob, historyBlob, err := encodeMatch(&edited)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(`
		UPDATE matches SET
			date = ?,
			team1_blob = ?,
			team2_blob = ?,
			score_team1 = ?,
			score_team2 = ?,
			winner = ?,
			winner_label = ?,
			comment = ?,
			edit_history_blob = ?
		WHERE id = ?`,
		edited.Date, team1Blob, team2Blob, edited.ScoreTeam1, edited.ScoreTeam2,
		string(edited.Winner), edited.WinnerLabel, edited.Comment, historyBlob, edited.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update match %s: %w", matchID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit edit of match %s: %w", matchID, err)
	}
	return &edited, nil
}

// ConfirmMatch clears the pending confirmation flag.
func (s *store) ConfirmMatch(matchID string) error {
	s.mu.Lock()
	res, err := s.db.Exec("UPDATE matches SET pending_confirmation = 0 WHERE id = ?", matchID)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to confirm match %s: %w", matchID, err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	s.broadcast()
	return nil
}

// DeleteMatch moves a match into the deletion log. The snapshot insert and the
// removal of the original happen in one transaction.
func (s *store) DeleteMatch(matchID, deletedBy string, at time.Time) (*ledger.DeletionRecord, error) {
	s.mu.Lock()
	record, err := s.deleteMatchLocked(matchID, deletedBy, at)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	log.Info("Match moved to deletion log", "matchID", matchID, "deletedBy", deletedBy)
	s.broadcast()
	return record, nil
}

func (s *store) deleteMatchLocked(matchID, deletedBy string, at time.Time) (*ledger.DeletionRecord, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	match, err := scanMatch(tx.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read match %s: %w", matchID, err)
	}

	record := &ledger.DeletionRecord{
		OriginalMatch: *match,
		DeletedBy:     deletedBy,
		DeletedAt:     at.UTC(),
	}
	blob, err := msgpack.Marshal(record.OriginalMatch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode deletion snapshot: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO deleted_matches (id, original_match_blob, deleted_by, deleted_at) VALUES (?, ?, ?, ?)`,
		matchID, blob, deletedBy, record.DeletedAt.UnixMilli()); err != nil {
		return nil, fmt.Errorf("failed to insert deletion record: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM matches WHERE id = ?", matchID); err != nil {
		return nil, fmt.Errorf("failed to remove match %s: %w", matchID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit deletion: %w", err)
	}
	return record, nil
}

// SetPaymentStatus upserts the payment status for a day and player. The
// history is merged, never truncated.
func (s *store) SetPaymentStatus(date, player string, paid bool, changedBy string, at time.Time) (*ledger.PaymentStatus, error) {
	s.mu.Lock()
	status, err := s.updatePaymentLocked(date, player, changedBy, at, func(bool) bool { return paid })
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.broadcast()
	return status, nil
}

// TogglePayment flips the payment status for a day and player. A pair without a
// record starts out unpaid, so the first toggle marks it paid.
func (s *store) TogglePayment(date, player, changedBy string, at time.Time) (*ledger.PaymentStatus, error) {
	s.mu.Lock()
	status, err := s.updatePaymentLocked(date, player, changedBy, at, func(current bool) bool { return !current })
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.broadcast()
	return status, nil
}

func (s *store) updatePaymentLocked(date, player, changedBy string, at time.Time, next func(bool) bool) (*ledger.PaymentStatus, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	status := &ledger.PaymentStatus{Date: date, Player: player}
	var historyBlob []byte
	err = tx.QueryRow("SELECT paid, payment_history_blob FROM daily_payment_status WHERE date = ? AND player = ?", date, player).
		Scan(&status.Paid, &historyBlob)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read payment status: %w", err)
	}
	if len(historyBlob) > 0 {
		if err := msgpack.Unmarshal(historyBlob, &status.History); err != nil {
			return nil, fmt.Errorf("failed to decode payment history: %w", err)
		}
	}

	status.Paid = next(status.Paid)
	action := ledger.PaymentActionUnpaid
	if status.Paid {
		action = ledger.PaymentActionPaid
	}
	status.History = append(status.History, ledger.PaymentChange{
		ChangedBy: changedBy,
		Action:    action,
		Timestamp: at.UTC(),
	})

	historyBlob, err = msgpack.Marshal(status.History)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment history: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO daily_payment_status (date, player, paid, payment_history_blob)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date, player) DO UPDATE SET
			paid = excluded.paid,
			payment_history_blob = excluded.payment_history_blob`,
		date, player, status.Paid, historyBlob)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert payment status: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment status: %w", err)
	}
	return status, nil
}

// GetMatches returns every active match, newest day first.
func (s *store) GetMatches() ([]ledger.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getMatchesLocked()
}

func (s *store) getMatchesLocked() ([]ledger.Match, error) {
	rows, err := s.db.Query(`SELECT ` + matchColumns + ` FROM matches ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := []ledger.Match{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if errors.Is(err, ErrCorruptHistory) {
			// Listed without its history; single reads and edits refuse it.
			log.Error("Match listed without edit history", "error", err)
		} else if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

// GetDeletions returns the deletion log, most recent deletion first.
func (s *store) GetDeletions() ([]ledger.DeletionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getDeletionsLocked()
}

func (s *store) getDeletionsLocked() ([]ledger.DeletionRecord, error) {
	rows, err := s.db.Query("SELECT original_match_blob, deleted_by, deleted_at FROM deleted_matches ORDER BY deleted_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query deletions: %w", err)
	}
	defer rows.Close()

	records := []ledger.DeletionRecord{}
	for rows.Next() {
		var (
			blob      []byte
			record    ledger.DeletionRecord
			deletedAt int64
		)
		if err := rows.Scan(&blob, &record.DeletedBy, &deletedAt); err != nil {
			log.Error("Failed to scan deletion row", "error", err)
			continue
		}
		if err := msgpack.Unmarshal(blob, &record.OriginalMatch); err != nil {
			log.Error("Failed to decode deletion snapshot", "error", err)
			continue
		}
		record.DeletedAt = time.UnixMilli(deletedAt).UTC()
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetPayments returns every payment status keyed by day and player.
func (s *store) GetPayments() (map[ledger.PaymentKey]ledger.PaymentStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPaymentsLocked()
}

func (s *store) getPaymentsLocked() (map[ledger.PaymentKey]ledger.PaymentStatus, error) {
	rows, err := s.db.Query("SELECT date, player, paid, payment_history_blob FROM daily_payment_status")
	if err != nil {
		return nil, fmt.Errorf("failed to query payment status: %w", err)
	}
	defer rows.Close()

	payments := make(map[ledger.PaymentKey]ledger.PaymentStatus)
	for rows.Next() {
		var (
			status ledger.PaymentStatus
			blob   []byte
		)
		if err := rows.Scan(&status.Date, &status.Player, &status.Paid, &blob); err != nil {
			log.Error("Failed to scan payment row", "error", err)
			continue
		}
		if len(blob) > 0 {
			if err := msgpack.Unmarshal(blob, &status.History); err != nil {
				log.Error("Failed to decode payment history", "error", err, "date", status.Date, "player", status.Player)
			}
		}
		payments[ledger.PaymentKey{Date: status.Date, Player: status.Player}] = status
	}
	return payments, rows.Err()
}

// GetAllPlayers returns every name that appears in an active match, sorted.
func (s *store) GetAllPlayers() ([]string, error) {
	matches, err := s.GetMatches()
	if err != nil {
		return nil, err
	}
	return playerNames(matches), nil
}

// Snapshot reads the three collections under one read lock.
func (s *store) Snapshot() (ledger.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches, err := s.getMatchesLocked()
	if err != nil {
		return ledger.Snapshot{}, err
	}
	deletions, err := s.getDeletionsLocked()
	if err != nil {
		return ledger.Snapshot{}, err
	}
	payments, err := s.getPaymentsLocked()
	if err != nil {
		return ledger.Snapshot{}, err
	}
	return ledger.Snapshot{Matches: matches, Deletions: deletions, Payments: payments}, nil
}

// Clear wipes every table.
func (s *store) Clear() {
	s.mu.Lock()
	for _, table := range []string{"matches", "deleted_matches", "daily_payment_status"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
	s.mu.Unlock()

	log.Info("Cleared all ledger data")
	s.broadcast()
}

// scanMatch is a helper function to scan a single match row. When only the
// edit history fails to decode, the match is returned along with an error
// wrapping ErrCorruptHistory.
func scanMatch(scanner interface{ Scan(...any) error }) (*ledger.Match, error) {
	var (
		match                            ledger.Match
		winner                           string
		createdAt                        int64
		team1Blob, team2Blob, historyBlob []byte
	)
	err := scanner.Scan(
		&match.ID, &match.Date, &team1Blob, &team2Blob, &match.ScoreTeam1, &match.ScoreTeam2,
		&winner, &match.WinnerLabel, &match.Comment, &match.LoadedBy, &createdAt,
		&historyBlob, &match.PendingConfirmation, &match.SourceID,
	)
	if err != nil {
		return nil, err
	}

	match.Winner = ledger.Winner(winner)
	match.CreatedAt = time.UnixMilli(createdAt).UTC()
	if err := msgpack.Unmarshal(team1Blob, &match.Team1Players); err != nil {
		return nil, fmt.Errorf("failed to decode team1 for match %s: %w", match.ID, err)
	}
	if err := msgpack.Unmarshal(team2Blob, &match.Team2Players); err != nil {
		return nil, fmt.Errorf("failed to decode team2 for match %s: %w", match.ID, err)
	}
	if len(historyBlob) > 0 {
		if err := msgpack.Unmarshal(historyBlob, &match.EditHistory); err != nil {
			return &match, fmt.Errorf("%w for match %s: %w", ErrCorruptHistory, match.ID, err)
		}
	}
	return &match, nil
}

func encodeMatch(match *ledger.Match) (team1, team2, history []byte, err error) {
	if team1, err = msgpack.Marshal(match.Team1Players); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode team1: %w", err)
	}
	if team2, err = msgpack.Marshal(match.Team2Players); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode team2: %w", err)
	}
	if len(match.EditHistory) > 0 {
		if history, err = msgpack.Marshal(match.EditHistory); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to encode edit history: %w", err)
		}
	}
	return team1, team2, history, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrMatchNotFound
	}
	return nil
}
