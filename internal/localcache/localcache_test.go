// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package localcache

import (
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	communityModels "github.com/crimsonlab/crimson/communities/models"
	postModels "github.com/crimsonlab/crimson/posts/models"
	voteModels "github.com/crimsonlab/crimson/votes/models"
)

func TestStore_SetPostsOrdersNewestFirst(t *testing.T) {
	s := NewStore()

	older := &postModels.Post{ObjectId: uuid.Must(uuid.NewV4()), Title: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &postModels.Post{ObjectId: uuid.Must(uuid.NewV4()), Title: "newer", CreatedAt: time.Now()}

	s.SetPosts([]*postModels.Post{older, newer})

	posts := s.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Title)
	assert.Equal(t, "older", posts[1].Title)
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	s := NewStore()
	postID := uuid.Must(uuid.NewV4())

	s.SetPosts([]*postModels.Post{{ObjectId: postID, Score: 1, CreatedAt: time.Now()}})

	got := s.Posts()[0]
	got.Score = 999

	assert.Equal(t, int64(1), s.Posts()[0].Score)
}

func TestStore_CommitVoteUpdatesRecordAndScoreTogether(t *testing.T) {
	s := NewStore()
	userID := uuid.Must(uuid.NewV4())
	postID := uuid.Must(uuid.NewV4())

	post := &postModels.Post{ObjectId: postID, Score: 10, CreatedAt: time.Now()}
	s.SetPosts([]*postModels.Post{post})
	s.SelectPost(post)

	vote := &voteModels.Vote{
		ObjectId: uuid.Must(uuid.NewV4()), OwnerUserId: userID, PostId: postID, Value: 1,
	}
	s.CommitVote(userID, postID, vote, 1)

	require.NotNil(t, s.VoteFor(userID, postID))
	assert.Equal(t, int64(11), s.Posts()[0].Score)
	// The selected post view moves in the same commit.
	assert.Equal(t, int64(11), s.SelectedPost().Score)

	// Removal reverses both.
	s.CommitVote(userID, postID, nil, -1)
	assert.Nil(t, s.VoteFor(userID, postID))
	assert.Equal(t, int64(10), s.Posts()[0].Score)
	assert.Equal(t, int64(10), s.SelectedPost().Score)
}

func TestStore_CommitMembershipUpdatesSetAndCounterTogether(t *testing.T) {
	s := NewStore()
	userID := uuid.Must(uuid.NewV4())
	communityID := uuid.Must(uuid.NewV4())

	s.SetCurrentCommunity(&communityModels.Community{ObjectId: communityID, MemberCount: 3})

	m := &communityModels.Membership{
		ObjectId: uuid.Must(uuid.NewV4()), UserId: userID, CommunityId: communityID,
	}
	s.CommitMembership(userID, communityID, m, 1)

	assert.True(t, s.IsJoined(userID, communityID))
	assert.Equal(t, int64(4), s.CurrentCommunity().MemberCount)

	s.CommitMembership(userID, communityID, nil, -1)
	assert.False(t, s.IsJoined(userID, communityID))
	assert.Equal(t, int64(3), s.CurrentCommunity().MemberCount)
}

func TestStore_RemovePostClearsSelection(t *testing.T) {
	s := NewStore()
	postID := uuid.Must(uuid.NewV4())

	post := &postModels.Post{ObjectId: postID, CreatedAt: time.Now()}
	s.SetPosts([]*postModels.Post{post})
	s.SelectPost(post)

	s.RemovePost(postID)

	assert.Empty(t, s.Posts())
	assert.Nil(t, s.SelectedPost())
}

func TestStore_SubscribersSeeCommittedChanges(t *testing.T) {
	s := NewStore()
	userID := uuid.Must(uuid.NewV4())
	postID := uuid.Must(uuid.NewV4())

	var events []Event
	unsubscribe := s.Subscribe(func(e Event) {
		events = append(events, e)
	})

	s.CommitVote(userID, postID, &voteModels.Vote{
		ObjectId: uuid.Must(uuid.NewV4()), OwnerUserId: userID, PostId: postID, Value: 1,
	}, 1)

	require.Len(t, events, 1)
	assert.Equal(t, EventVote, events[0].Kind)
	assert.Equal(t, userID, events[0].UserID)
	assert.Equal(t, postID, events[0].PostID)

	unsubscribe()
	s.ClearVotes(userID)
	assert.Len(t, events, 1)
}

// A subscriber may read the store from inside its callback.
func TestStore_SubscriberCanReadDuringNotify(t *testing.T) {
	s := NewStore()
	userID := uuid.Must(uuid.NewV4())
	postID := uuid.Must(uuid.NewV4())

	s.SetPosts([]*postModels.Post{{ObjectId: postID, Score: 0, CreatedAt: time.Now()}})

	var observed int64 = -1
	s.Subscribe(func(e Event) {
		if e.Kind == EventVote {
			observed = s.Posts()[0].Score
		}
	})

	s.CommitVote(userID, postID, &voteModels.Vote{
		ObjectId: uuid.Must(uuid.NewV4()), OwnerUserId: userID, PostId: postID, Value: 1,
	}, 1)

	assert.Equal(t, int64(1), observed)
}

func TestStore_ReplaceAndClearActorState(t *testing.T) {
	s := NewStore()
	userID := uuid.Must(uuid.NewV4())
	postID := uuid.Must(uuid.NewV4())
	communityID := uuid.Must(uuid.NewV4())

	s.ReplaceVotes(userID, []*voteModels.Vote{{
		ObjectId: uuid.Must(uuid.NewV4()), OwnerUserId: userID, PostId: postID, Value: -1,
	}})
	s.ReplaceMemberships(userID, []*communityModels.Membership{{
		ObjectId: uuid.Must(uuid.NewV4()), UserId: userID, CommunityId: communityID,
	}})

	require.NotNil(t, s.VoteFor(userID, postID))
	assert.True(t, s.IsJoined(userID, communityID))
	assert.Len(t, s.Votes(userID), 1)
	assert.Len(t, s.Memberships(userID), 1)

	s.ClearVotes(userID)
	s.ClearMemberships(userID)

	assert.Nil(t, s.VoteFor(userID, postID))
	assert.False(t, s.IsJoined(userID, communityID))
}
