package challengeimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"

	"github.com/hocus-focus/challenge-api/pkg/challenge_api/models"
)

type Logger interface {
	Printf(format string, v ...any)
}

type Options struct {
	CSVPath string
	DryRun  bool
	// Workers bounds concurrent inserts; defaults to 4.
	Workers int64
	Logger  Logger
}

type Result struct {
	BatchID     string
	Processed   int
	Inserted    int
	Skipped     int
	ParseErrors int
}

type headerIndex struct {
	date         int
	clue         int
	credit       int
	creditUrl    int
	goals        int
	hitareas     int
	beforeTitle  int
	beforeBody   int
	beforeButton int
	theme        int
	isTest       int
	isPermanent  int
	isTutorial   int
}

// ImportCSV bulk-loads challenges from a semicolon-delimited CSV. Each row
// passes through the same validation as POST /challenge; invalid rows are
// logged and skipped, never partially written.
func ImportCSV(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	if db == nil {
		return Result{}, errors.New("db is nil")
	}
	csvPath := strings.TrimSpace(opts.CSVPath)
	if csvPath == "" {
		return Result{}, errors.New("csv path is empty")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 4
	}
	if ctx == nil {
		ctx = context.Background()
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	idx, err := mapHeaders(headers)
	if err != nil {
		return Result{}, fmt.Errorf("invalid csv header: %w", err)
	}

	result := Result{BatchID: uuid.NewString()}
	logger.Printf("import batch %s: reading %s", result.BatchID, csvPath)

	var mu sync.Mutex
	grp, grpCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(workers)

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			logger.Printf("line %d: read error: %v", line, err)
			result.ParseErrors++
			continue
		}

		input, err := parseRow(record, idx)
		if err != nil {
			logger.Printf("line %d: %v", line, err)
			result.ParseErrors++
			continue
		}
		result.Processed++

		if invalids := input.Validate(); len(invalids) > 0 {
			logger.Printf("line %d: %s: %s", line, invalids[0].Name, invalids[0].Reason)
			mu.Lock()
			result.Skipped++
			mu.Unlock()
			continue
		}

		if opts.DryRun {
			continue
		}

		lineNo := line
		ch := input.Challenge()
		if err := sem.Acquire(grpCtx, 1); err != nil {
			break
		}
		grp.Go(func() error {
			defer sem.Release(1)
			if err := db.WithContext(grpCtx).Create(&ch).Error; err != nil {
				logger.Printf("line %d: insert failed: %v", lineNo, err)
				mu.Lock()
				result.Skipped++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			result.Inserted++
			mu.Unlock()
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return result, err
	}

	logger.Printf("import batch %s: processed=%d inserted=%d skipped=%d parse_errors=%d",
		result.BatchID, result.Processed, result.Inserted, result.Skipped, result.ParseErrors)
	return result, nil
}

func mapHeaders(headers []string) (headerIndex, error) {
	idx := headerIndex{
		date: -1, clue: -1, credit: -1, creditUrl: -1, goals: -1, hitareas: -1,
		beforeTitle: -1, beforeBody: -1, beforeButton: -1, theme: -1,
		isTest: -1, isPermanent: -1, isTutorial: -1,
	}
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "date":
			idx.date = i
		case "clue":
			idx.clue = i
		case "credit":
			idx.credit = i
		case "credit_url":
			idx.creditUrl = i
		case "goals":
			idx.goals = i
		case "hitareas":
			idx.hitareas = i
		case "before_message_title":
			idx.beforeTitle = i
		case "before_message_body":
			idx.beforeBody = i
		case "before_message_button":
			idx.beforeButton = i
		case "theme":
			idx.theme = i
		case "is_test":
			idx.isTest = i
		case "is_permanent":
			idx.isPermanent = i
		case "is_tutorial":
			idx.isTutorial = i
		}
	}
	if idx.clue == -1 {
		return idx, errors.New("missing required column: clue")
	}
	return idx, nil
}

func parseRow(record []string, idx headerIndex) (*models.CreateChallengeInput, error) {
	input := &models.CreateChallengeInput{
		Date:                field(record, idx.date),
		Clue:                field(record, idx.clue),
		Credit:              field(record, idx.credit),
		CreditUrl:           field(record, idx.creditUrl),
		GoalsRaw:            field(record, idx.goals),
		Hitareas:            field(record, idx.hitareas),
		BeforeMessageTitle:  field(record, idx.beforeTitle),
		BeforeMessageBody:   field(record, idx.beforeBody),
		BeforeMessageButton: field(record, idx.beforeButton),
		Theme:               field(record, idx.theme),
	}

	var err error
	if input.IsTest, err = boolField(record, idx.isTest); err != nil {
		return nil, fmt.Errorf("is_test: %w", err)
	}
	if input.IsPermanent, err = boolField(record, idx.isPermanent); err != nil {
		return nil, fmt.Errorf("is_permanent: %w", err)
	}
	if input.IsTutorial, err = boolField(record, idx.isTutorial); err != nil {
		return nil, fmt.Errorf("is_tutorial: %w", err)
	}
	return input, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func boolField(record []string, i int) (bool, error) {
	raw := field(record, i)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
