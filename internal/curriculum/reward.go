package curriculum

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// Reward computes the XP reward for a piece of content. The amount is a
// deterministic function of the content ID - a fixed-seed FNV-1a hash scaled
// into the difficulty band - so toggling the same content on and off always
// moves the same magnitude and completion cannot be re-rolled.
func Reward(contentID string, difficulty domain.Difficulty, penalized bool) int {
	lo, hi := rewardBand(difficulty)

	span := uint64(hi - lo + 1)
	reward := lo + int(rewardHash(contentID)%span)

	if penalized {
		reward = int(math.Floor(float64(reward) * ForcedUnlockPenalty))
	}
	return reward
}

func rewardBand(difficulty domain.Difficulty) (int, int) {
	switch difficulty {
	case domain.DifficultyNormal:
		return RewardNormalMin, RewardNormalMax
	case domain.DifficultyHard:
		return RewardHardMin, RewardHardMax
	default:
		return RewardEasyMin, RewardEasyMax
	}
}

func rewardHash(contentID string) uint64 {
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], rewardSeed)

	h := fnv.New64a()
	_, _ = h.Write(seed[:])
	_, _ = h.Write([]byte(contentID))
	return h.Sum64()
}
