package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"git.lost.host/meutraa/vbeat/internal/score"
)

// Run is one finished performance. The breakdown is stored as json so
// judgment tiers can change without a migration.
type Run struct {
	ID         string
	SongSum    string
	Difficulty string
	Score      int
	MaxCombo   int
	Accuracy   float64
	Grade      string
	Breakdown  score.Breakdown
	PlayedAt   time.Time
}

type Store struct {
	db *sql.DB
}

func Open(file string) (*Store, error) {
	db, err := sql.Open("sqlite3", file)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open history database")
	}

	initStatement := `
	create table if not exists runs
	  (
		  id text not null primary key,
		  sum text,
		  difficulty text,
		  score integer,
		  max_combo integer,
		  accuracy real,
		  grade text,
		  breakdown bytearray,
		  played_at timestamp
	  );
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, errors.Wrap(err, "unable to create runs table")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if nil == s.db {
		return nil
	}
	return s.db.Close()
}

// SongSum keys runs to a song identity independent of file paths.
func SongSum(song string) string {
	sum := sha256.Sum256([]byte(song))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Save records a finished run under a fresh run ID.
func (s *Store) Save(songSum, difficulty string, stats score.Stats) (*Run, error) {
	run := &Run{
		ID:         uuid.New().String(),
		SongSum:    songSum,
		Difficulty: difficulty,
		Score:      stats.Score,
		MaxCombo:   stats.MaxCombo,
		Accuracy:   stats.Accuracy,
		Grade:      stats.Grade,
		Breakdown:  stats.Breakdown,
		PlayedAt:   time.Now(),
	}
	data, err := json.Marshal(run.Breakdown)
	if nil != err {
		return nil, errors.Wrap(err, "unable to marshal breakdown")
	}
	_, err = s.db.Exec(
		"insert into runs(id, sum, difficulty, score, max_combo, accuracy, grade, breakdown, played_at) values(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.SongSum, run.Difficulty, run.Score, run.MaxCombo, run.Accuracy, run.Grade, data, run.PlayedAt,
	)
	if nil != err {
		return nil, errors.Wrap(err, "unable to save run")
	}
	return run, nil
}

// Best returns the highest-scoring previous run for the song and
// difficulty, or nil if the song has never been played.
func (s *Store) Best(songSum, difficulty string) (*Run, error) {
	row := s.db.QueryRow(
		"select id, sum, difficulty, score, max_combo, accuracy, grade, breakdown, played_at from runs where sum = ? and difficulty = ? order by score desc limit 1",
		songSum, difficulty,
	)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return run, err
}

// Recent lists the latest runs for the song, newest first.
func (s *Store) Recent(songSum string, limit int) ([]Run, error) {
	rows, err := s.db.Query(
		"select id, sum, difficulty, score, max_combo, accuracy, grade, breakdown, played_at from runs where sum = ? order by played_at desc limit ?",
		songSum, limit,
	)
	if nil != err {
		return nil, errors.Wrap(err, "unable to load runs")
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if nil != err {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scannable) (*Run, error) {
	var run Run
	var breakdown []byte
	err := row.Scan(&run.ID, &run.SongSum, &run.Difficulty, &run.Score,
		&run.MaxCombo, &run.Accuracy, &run.Grade, &breakdown, &run.PlayedAt)
	if nil != err {
		return nil, err
	}
	if err := json.Unmarshal(breakdown, &run.Breakdown); nil != err {
		return nil, errors.Wrap(err, "unable to unmarshal breakdown")
	}
	return &run, nil
}
