package wishlist

import (
	"testing"

	"tabi/models"
)

func TestToggleVoteAddsThenCancels(t *testing.T) {
	item := models.WishlistItem{WishID: "w1", Name: "snorkeling", Votes: 3, VotedBy: []string{"ua", "ub", "uc"}}

	added := applyVoteToggle(&item, "ud")
	if !added {
		t.Fatal("first toggle should add the vote")
	}
	if item.Votes != 4 || !hasVoted(item, "ud") {
		t.Fatalf("after add: votes=%d votedBy=%v", item.Votes, item.VotedBy)
	}

	added = applyVoteToggle(&item, "ud")
	if added {
		t.Fatal("second toggle should cancel the vote")
	}
	if item.Votes != 3 || hasVoted(item, "ud") {
		t.Fatalf("after cancel: votes=%d votedBy=%v", item.Votes, item.VotedBy)
	}
}

func TestDoubleToggleRestoresOriginalState(t *testing.T) {
	item := models.WishlistItem{WishID: "w1", Votes: 2, VotedBy: []string{"ua", "ub"}}

	applyVoteToggle(&item, "uc")
	applyVoteToggle(&item, "uc")

	if item.Votes != 2 {
		t.Fatalf("votes drifted to %d", item.Votes)
	}
	if len(item.VotedBy) != 2 || item.VotedBy[0] != "ua" || item.VotedBy[1] != "ub" {
		t.Fatalf("voter set drifted: %v", item.VotedBy)
	}
}

func TestVoteCountTracksVoterSet(t *testing.T) {
	item := models.WishlistItem{WishID: "w1"}
	voters := []string{"u1", "u2", "u3", "u4"}
	for _, v := range voters {
		applyVoteToggle(&item, v)
	}
	if item.Votes != len(item.VotedBy) {
		t.Fatalf("votes=%d but set size=%d", item.Votes, len(item.VotedBy))
	}

	applyVoteToggle(&item, "u2")
	if item.Votes != len(item.VotedBy) {
		t.Fatalf("after retraction votes=%d set=%d", item.Votes, len(item.VotedBy))
	}
	if hasVoted(item, "u2") {
		t.Fatal("u2 should no longer be in the voter set")
	}
}
