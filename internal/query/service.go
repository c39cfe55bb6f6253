package query

import (
	"cmp"
	"context"
	"log/slog"
	"math/rand/v2"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/joseph-ayodele/decisions-extractor/internal/entity"
	"github.com/joseph-ayodele/decisions-extractor/internal/repository"
)

var reDigits = regexp.MustCompile(`^\d+$`)

type Config struct {
	SampleSize  int // default 5
	SampleRange int // ids are drawn from 1..SampleRange, default 10
}

// Service answers the two chat requests: a random sample and a lookup by id.
type Service struct {
	cfg       Config
	decisions repository.DecisionRepository
	logger    *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService builds a Service. A nil rng is replaced by a randomly seeded one.
func NewService(cfg Config, decisions repository.DecisionRepository, rng *rand.Rand, logger *slog.Logger) *Service {
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = 5
	}
	if cfg.SampleRange <= 0 {
		cfg.SampleRange = 10
	}
	if cfg.SampleSize > cfg.SampleRange {
		cfg.SampleSize = cfg.SampleRange
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, decisions: decisions, rng: rng, logger: logger}
}

// SampleIDs draws SampleSize distinct ids uniformly from 1..SampleRange, sorted.
func (s *Service) SampleIDs() []int64 {
	s.mu.Lock()
	perm := s.rng.Perm(s.cfg.SampleRange)
	s.mu.Unlock()

	ids := make([]int64, s.cfg.SampleSize)
	for i := range ids {
		ids[i] = int64(perm[i] + 1)
	}
	slices.Sort(ids)
	return ids
}

// SampleDecisions returns the stored records among a fresh id sample, ordered by id.
// Ids that were never stored are silently left out.
func (s *Service) SampleDecisions(ctx context.Context) ([]*entity.Decision, error) {
	ids := s.SampleIDs()
	recs, err := s.decisions.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(recs, func(a, b *entity.Decision) int { return cmp.Compare(a.ID, b.ID) })
	s.logger.Debug("query.sample", "ids", ids, "found", len(recs))
	return recs, nil
}

// Get looks up one record; found is false for an id that was never stored.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Decision, bool, error) {
	return s.decisions.GetByID(ctx, id)
}

// Sample renders a sample as chat text, one record per line.
func (s *Service) Sample(ctx context.Context) (string, error) {
	recs, err := s.SampleDecisions(ctx)
	if err != nil {
		return "", err
	}
	if len(recs) == 0 {
		return NoRecordsMessage, nil
	}
	return FormatDecisions(recs), nil
}

// Lookup renders a single record, or the not-found sentence naming id.
func (s *Service) Lookup(ctx context.Context, id int64) (string, error) {
	d, found, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return NotFoundMessage(strconv.FormatInt(id, 10)), nil
	}
	return FormatDecision(d), nil
}

// Reply dispatches an incoming chat message: "/start" samples, a digits-only
// message looks up that id, anything else gets the usage hint. Storage
// failures are logged and answered with a generic message.
func (s *Service) Reply(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)

	var (
		out string
		err error
	)
	switch {
	case text == "/start":
		out, err = s.Sample(ctx)
	case reDigits.MatchString(text):
		id, convErr := strconv.ParseInt(text, 10, 64)
		if convErr != nil {
			// too large to be a stored id
			return NotFoundMessage(text), nil
		}
		out, err = s.Lookup(ctx, id)
	default:
		return UsageMessage, nil
	}

	if err != nil {
		s.logger.Error("query.reply.storage_error", "text", text, "error", err)
		return UnavailableMessage, nil
	}
	return out, nil
}
