package chat

import (
	"slices"

	"github.com/samber/lo"
)

// Favorites maps each user to an ordered set of message ids.
// It holds ids only; messages are resolved against the ledger on read.
// Not safe for concurrent use; Room serializes access.
type Favorites struct {
	sets map[ConnectionID][]uint64
}

func NewFavorites() *Favorites {
	return &Favorites{
		sets: make(map[ConnectionID][]uint64),
	}
}

// creates an empty set for a user if none exists
func (f *Favorites) Ensure(user ConnectionID) {
	if _, ok := f.sets[user]; !ok {
		f.sets[user] = []uint64{}
	}
}

// adds the id if absent, removes it if present. reports whether it is now a favorite.
func (f *Favorites) Toggle(user ConnectionID, messageID uint64) bool {
	set := f.sets[user]

	if idx := slices.Index(set, messageID); idx >= 0 {
		f.sets[user] = slices.Delete(set, idx, idx+1)
		return false
	}

	f.sets[user] = append(set, messageID)
	return true
}

func (f *Favorites) Has(user ConnectionID, messageID uint64) bool {
	return slices.Contains(f.sets[user], messageID)
}

// returns a copy of the user's ids in insertion order
func (f *Favorites) ids(user ConnectionID) []uint64 {
	return slices.Clone(f.sets[user])
}

// returns the users whose set contains the id, sorted for deterministic fan-out
func (f *Favorites) Holders(messageID uint64) []ConnectionID {
	var holders []ConnectionID

	for user, set := range f.sets {
		if slices.Contains(set, messageID) {
			holders = append(holders, user)
		}
	}

	slices.Sort(holders)
	return holders
}

// strips the id from every set. returns the users that held it.
func (f *Favorites) Remove(messageID uint64) []ConnectionID {
	var affected []ConnectionID

	for user, set := range f.sets {
		if idx := slices.Index(set, messageID); idx >= 0 {
			f.sets[user] = slices.Delete(set, idx, idx+1)
			affected = append(affected, user)
		}
	}

	slices.Sort(affected)
	return affected
}

// discards the user's set
func (f *Favorites) Drop(user ConnectionID) {
	delete(f.sets, user)
}

// resolves the user's ids against history, keeping history order and
// skipping ids that no longer exist
func (f *Favorites) Resolve(user ConnectionID, history []Message) []Message {
	set := f.sets[user]
	if len(set) == 0 {
		return []Message{}
	}

	return lo.Filter(history, func(m Message, _ int) bool {
		return slices.Contains(set, m.ID)
	})
}

// number of users with a tracked set
func (f *Favorites) users() int {
	return len(f.sets)
}
