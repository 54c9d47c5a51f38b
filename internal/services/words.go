package services

import (
	"context"
	stderrors "errors"
	"math/rand/v2"

	"github.com/impostor-party/impostor/internal/errors"
	"github.com/impostor-party/impostor/internal/logger"
	"github.com/impostor-party/impostor/internal/models"
)

// WordService picks the secret word(s) for a round from the enabled
// categories. Pools are rebuilt fresh on every call; all draws are uniform
// over the candidate pool.
type WordService struct {
	log      logger.Logger
	category CategoryServicer
}

// NewWordService creates a new WordService
func NewWordService(log logger.Logger, category CategoryServicer) *WordService {
	return &WordService{log: log, category: category}
}

// PairPick is one word pair drawn from an enabled category
type PairPick struct {
	Pair     models.WordPair
	Category string
}

// TwoPairPick is two distinct word pairs drawn from the same category
type TwoPairPick struct {
	First    models.WordPair
	Second   models.WordPair
	Category string
}

// usablePair reports whether a pair carries at least one word. Imported
// data can contain fully-empty pairs; the selector never deals them.
func usablePair(p models.WordPair) bool {
	return p.Citizen != "" || p.Undercover != ""
}

func usablePairs(pairs []models.WordPair) []models.WordPair {
	var out []models.WordPair
	for _, p := range pairs {
		if usablePair(p) {
			out = append(out, p)
		}
	}
	return out
}

// RandomWord picks one (word, category name) uniformly from the flattened
// word pool of all enabled categories
func (s *WordService) RandomWord(ctx context.Context) (string, string, error) {
	enabled, err := s.category.ListEnabled(ctx)
	if err != nil {
		return "", "", err
	}

	type entry struct {
		word     string
		category string
	}
	var pool []entry
	for _, cat := range enabled {
		for _, word := range cat.Words {
			pool = append(pool, entry{word: word, category: cat.Name})
		}
	}

	if len(pool) == 0 {
		return "", "", errors.NoWords("no words available in enabled categories")
	}

	picked := pool[rand.IntN(len(pool))]
	return picked.word, picked.category, nil
}

// RandomWordPair picks one word pair uniformly from the flattened pair
// pool of enabled categories that have at least one pair
func (s *WordService) RandomWordPair(ctx context.Context) (*PairPick, error) {
	enabled, err := s.category.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}

	var pool []PairPick
	for _, cat := range enabled {
		for _, pair := range usablePairs(cat.WordPairs) {
			pool = append(pool, PairPick{Pair: pair, Category: cat.Name})
		}
	}

	if len(pool) == 0 {
		return nil, errors.NoWords("no word pairs available in enabled categories")
	}

	picked := pool[rand.IntN(len(pool))]
	return &picked, nil
}

// TwoRandomWordPairs picks a category uniformly among enabled categories
// with at least two pairs, then draws two distinct pairs from it without
// replacement
func (s *WordService) TwoRandomWordPairs(ctx context.Context) (*TwoPairPick, error) {
	enabled, err := s.category.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		name  string
		pairs []models.WordPair
	}
	var eligible []candidate
	for _, cat := range enabled {
		if pairs := usablePairs(cat.WordPairs); len(pairs) >= 2 {
			eligible = append(eligible, candidate{name: cat.Name, pairs: pairs})
		}
	}
	if len(eligible) == 0 {
		return nil, errors.NoWords("no category has two word pairs")
	}

	cat := eligible[rand.IntN(len(eligible))]
	pairs := cat.pairs

	i := rand.IntN(len(pairs))
	first := pairs[i]
	pairs = append(pairs[:i], pairs[i+1:]...)
	second := pairs[rand.IntN(len(pairs))]

	return &TwoPairPick{First: first, Second: second, Category: cat.name}, nil
}

// SelectGameWords produces the word selection for one game according to
// the mode combination:
//
//   - classic: one word from the flat pool
//   - undercover: one pair, citizen/undercover split
//   - classic + confused: one pair; the pair's undercover side becomes the
//     confused player's word
//   - undercover + confused: two distinct pairs from one category; the
//     second pair's citizen word goes to the confused player. Falls back to
//     single-pair sampling when no category has two pairs.
func (s *WordService) SelectGameWords(ctx context.Context, mode models.GameMode, includeConfused bool) (*models.WordSelection, error) {
	undercover := mode == models.ModeUndercover

	switch {
	case !undercover && !includeConfused:
		word, category, err := s.RandomWord(ctx)
		if err != nil {
			return nil, err
		}
		return &models.WordSelection{SecretWord: word, Category: category}, nil

	case undercover && !includeConfused:
		pick, err := s.RandomWordPair(ctx)
		if err != nil {
			return nil, err
		}
		return &models.WordSelection{
			SecretWord:     pick.Pair.Citizen,
			UndercoverWord: pick.Pair.Undercover,
			Category:       pick.Category,
		}, nil

	case !undercover && includeConfused:
		pick, err := s.RandomWordPair(ctx)
		if err != nil {
			return nil, err
		}
		return &models.WordSelection{
			SecretWord:   pick.Pair.Citizen,
			ConfusedWord: pick.Pair.Undercover,
			Category:     pick.Category,
		}, nil

	default: // undercover + confused
		two, err := s.TwoRandomWordPairs(ctx)
		if err == nil {
			return &models.WordSelection{
				SecretWord:     two.First.Citizen,
				UndercoverWord: two.First.Undercover,
				ConfusedWord:   two.Second.Citizen,
				Category:       two.Category,
			}, nil
		}
		var appErr *errors.Error
		if !stderrors.As(err, &appErr) || appErr.Kind != errors.ErrNoWords {
			return nil, err
		}

		// Degraded single-pair fallback: the confused player shares the
		// undercover word.
		s.log.Warn("No category has two word pairs, falling back to single pair")
		pick, err := s.RandomWordPair(ctx)
		if err != nil {
			return nil, err
		}
		return &models.WordSelection{
			SecretWord:     pick.Pair.Citizen,
			UndercoverWord: pick.Pair.Undercover,
			ConfusedWord:   pick.Pair.Undercover,
			Category:       pick.Category,
		}, nil
	}
}
