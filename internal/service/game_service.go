package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"spello/internal/database"
	"spello/internal/game"
	"spello/internal/models"
	"spello/internal/repository"
	"spello/internal/speech"
	"spello/internal/words"
)

// GameService drives the round lifecycle: issue a target word, score the
// player's recording against it, then play the round into their profile
type GameService struct {
	db          *database.DB
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
	scoreRepo   *repository.ScoreRepository
	roundRepo   *repository.RoundRepository
	selector    *words.Selector
	provider    speech.Provider

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewGameService creates a new game service
func NewGameService(
	db *database.DB,
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	scoreRepo *repository.ScoreRepository,
	roundRepo *repository.RoundRepository,
	selector *words.Selector,
	provider speech.Provider,
) *GameService {
	return &GameService{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		scoreRepo:   scoreRepo,
		roundRepo:   roundRepo,
		selector:    selector,
		provider:    provider,
		locks:       make(map[int64]*sync.Mutex),
	}
}

// userLock returns the per-user mutex, creating it on first use. Concurrent
// plays for the same profile must serialize so counters never double-apply
func (s *GameService) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.locks[userID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// IssueTargetWord picks a practice word for the user and records it as the
// pending round. A non-empty sounds override wins over the stored preference
func (s *GameService) IssueTargetWord(userID int64, soundsOverride []string) (string, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", ErrProfileNotFound
	}

	sounds := user.SelectedSounds
	if len(soundsOverride) > 0 {
		for _, sound := range soundsOverride {
			if !words.IsSound(sound) {
				return "", ErrUnknownSound
			}
		}
		sounds = soundsOverride
	}

	customWords, err := s.profileRepo.GetCustomWords(userID)
	if err != nil {
		return "", fmt.Errorf("failed to get custom words: %w", err)
	}

	word, err := s.selector.Pick(sounds, customWords)
	if err != nil {
		return "", fmt.Errorf("failed to pick word: %w", err)
	}

	round := &models.Round{
		UserID:     userID,
		TargetWord: word,
	}
	if err := s.roundRepo.Upsert(s.db, round); err != nil {
		return "", fmt.Errorf("failed to store round: %w", err)
	}

	return word, nil
}

// SubmitSpeech transcribes the player's recording, scores it against the
// pending target word, and marks the round ready to play
func (s *GameService) SubmitSpeech(ctx context.Context, userID int64, audio io.Reader, filename string) (*models.Round, error) {
	round, err := s.roundRepo.Get(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	if round == nil || round.TargetWord == "" {
		return nil, ErrNoTargetWord
	}

	result, err := s.provider.Transcribe(ctx, audio, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, s.provider.Name(), err)
	}

	round.Transcript = speech.Normalize(result.Text)
	round.Accuracy = game.Accuracy(round.TargetWord, round.Transcript)
	round.Ready = true

	if err := s.roundRepo.Upsert(s.db, round); err != nil {
		return nil, fmt.Errorf("failed to store round: %w", err)
	}

	return round, nil
}

// Play consumes the pending round and applies its outcome to the player's
// profile. The read, the progress update, and the history append commit
// atomically; the round is cleared whether or not the group ended, since the
// next round always starts from a fresh target word
func (s *GameService) Play(userID int64) (*models.RoundResult, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	user, err := s.userRepo.GetUserByIDTx(tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}

	round, err := s.roundRepo.Get(tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	if round == nil {
		return nil, ErrNoPendingRound
	}

	today := time.Now().Format(game.DateLayout)
	result, record, err := game.PlayRound(user, round, today)
	if errors.Is(err, game.ErrRoundNotReady) {
		return nil, ErrNoPendingRound
	}
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.UpdateProgress(tx, user); err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}
	if err := s.scoreRepo.Append(tx, record); err != nil {
		return nil, fmt.Errorf("failed to append score record: %w", err)
	}
	if err := s.roundRepo.Clear(tx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear round: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit play: %w", err)
	}

	return result, nil
}
