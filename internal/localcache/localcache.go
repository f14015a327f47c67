// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package localcache is the in-memory mirror of the remote state the
// currently open views depend on: the visible post list, the selected
// post, each actor's vote records, and each actor's community
// memberships. It is mutated exclusively by the orchestrating services,
// and only after the document store has committed the corresponding
// transaction; views read it and subscribe to change notifications but
// never write to it.
package localcache

import (
	"sort"
	"sync"

	uuid "github.com/gofrs/uuid"

	communityModels "github.com/crimsonlab/crimson/communities/models"
	postModels "github.com/crimsonlab/crimson/posts/models"
	voteModels "github.com/crimsonlab/crimson/votes/models"
)

// EventKind identifies what part of the cached view changed.
type EventKind int

const (
	// EventPosts fires when the post list or the selected post changed
	EventPosts EventKind = iota
	// EventVote fires when an actor's vote record and the owning post's
	// score changed together
	EventVote
	// EventMembership fires when an actor's membership set and the
	// owning community's member count changed together
	EventMembership
	// EventCommunity fires when the current community changed
	EventCommunity
)

// Event describes a committed change. The IDs identify the affected
// records so a view showing a single post or community can ignore
// unrelated notifications.
type Event struct {
	Kind        EventKind
	UserID      uuid.UUID
	PostID      uuid.UUID
	CommunityID uuid.UUID
}

// Store holds the cached view state. All accessors return copies so a
// subscriber can never mutate cached state in place; the committed
// deltas are the only write path.
type Store struct {
	mu sync.RWMutex

	posts        []*postModels.Post
	selectedPost *postModels.Post

	currentCommunity *communityModels.Community

	// actor -> post -> vote record
	votes map[uuid.UUID]map[uuid.UUID]*voteModels.Vote

	// actor -> community -> membership snippet
	memberships map[uuid.UUID]map[uuid.UUID]*communityModels.Membership

	subscribers map[int]func(Event)
	nextSubID   int
}

// NewStore creates an empty local cache.
func NewStore() *Store {
	return &Store{
		votes:       make(map[uuid.UUID]map[uuid.UUID]*voteModels.Vote),
		memberships: make(map[uuid.UUID]map[uuid.UUID]*communityModels.Membership),
		subscribers: make(map[int]func(Event)),
	}
}

// Subscribe registers a change listener and returns its unsubscribe
// function. Listeners are invoked after the cache mutation completes,
// outside the store lock, so a listener may read the store.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// notify delivers the event to every subscriber. Must be called without
// holding the lock.
func (s *Store) notify(e Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}

// --- Posts ---

// SetPosts replaces the cached post list. Posts are kept in descending
// creation-time order, the only ordering the feed uses.
func (s *Store) SetPosts(posts []*postModels.Post) {
	copies := make([]*postModels.Post, 0, len(posts))
	for _, p := range posts {
		cp := *p
		copies = append(copies, &cp)
	}
	sort.SliceStable(copies, func(i, j int) bool {
		return copies[i].CreatedAt.After(copies[j].CreatedAt)
	})

	s.mu.Lock()
	s.posts = copies
	s.mu.Unlock()

	s.notify(Event{Kind: EventPosts})
}

// Posts returns a copy of the cached post list.
func (s *Store) Posts() []*postModels.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copies := make([]*postModels.Post, 0, len(s.posts))
	for _, p := range s.posts {
		cp := *p
		copies = append(copies, &cp)
	}
	return copies
}

// Post returns the cached post with the given id, or nil.
func (s *Store) Post(postID uuid.UUID) *postModels.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p := s.findPost(postID); p != nil {
		cp := *p
		return &cp
	}
	return nil
}

// AddPost inserts a newly created post at the head of the list.
func (s *Store) AddPost(post *postModels.Post) {
	cp := *post

	s.mu.Lock()
	s.posts = append([]*postModels.Post{&cp}, s.posts...)
	s.mu.Unlock()

	s.notify(Event{Kind: EventPosts, PostID: post.ObjectId})
}

// RemovePost drops a post from the list and clears the selection when
// the removed post was selected.
func (s *Store) RemovePost(postID uuid.UUID) {
	s.mu.Lock()
	filtered := s.posts[:0]
	for _, p := range s.posts {
		if p.ObjectId != postID {
			filtered = append(filtered, p)
		}
	}
	s.posts = filtered
	if s.selectedPost != nil && s.selectedPost.ObjectId == postID {
		s.selectedPost = nil
	}
	s.mu.Unlock()

	s.notify(Event{Kind: EventPosts, PostID: postID})
}

// SelectPost marks a post as the one shown in single-post view.
func (s *Store) SelectPost(post *postModels.Post) {
	cp := *post

	s.mu.Lock()
	s.selectedPost = &cp
	s.mu.Unlock()

	s.notify(Event{Kind: EventPosts, PostID: post.ObjectId})
}

// SelectedPost returns a copy of the selected post, or nil.
func (s *Store) SelectedPost() *postModels.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedPost == nil {
		return nil
	}
	cp := *s.selectedPost
	return &cp
}

// ApplyCommentCountDelta adjusts the comment counter on the cached post
// in every view that shows it.
func (s *Store) ApplyCommentCountDelta(postID uuid.UUID, delta int) {
	s.mu.Lock()
	if p := s.findPost(postID); p != nil {
		p.CommentCount += int64(delta)
	}
	if s.selectedPost != nil && s.selectedPost.ObjectId == postID {
		s.selectedPost.CommentCount += int64(delta)
	}
	s.mu.Unlock()

	s.notify(Event{Kind: EventPosts, PostID: postID})
}

// findPost returns the list entry for postID. Caller must hold the lock.
func (s *Store) findPost(postID uuid.UUID) *postModels.Post {
	for _, p := range s.posts {
		if p.ObjectId == postID {
			return p
		}
	}
	return nil
}

// --- Votes ---

// VoteFor returns a copy of the actor's vote record on the post, or nil
// when the actor has not voted. This is the state the vote decision is
// made against; no store read happens at decision time.
func (s *Store) VoteFor(userID, postID uuid.UUID) *voteModels.Vote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if byPost, ok := s.votes[userID]; ok {
		if v, ok := byPost[postID]; ok {
			cp := *v
			return &cp
		}
	}
	return nil
}

// Votes returns copies of all cached vote records for the actor.
func (s *Store) Votes(userID uuid.UUID) []*voteModels.Vote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byPost := s.votes[userID]
	copies := make([]*voteModels.Vote, 0, len(byPost))
	for _, v := range byPost {
		cp := *v
		copies = append(copies, &cp)
	}
	return copies
}

// ReplaceVotes swaps in a freshly fetched set of vote records for the
// actor, typically on view warm-up or after a conflict re-fetch.
func (s *Store) ReplaceVotes(userID uuid.UUID, votes []*voteModels.Vote) {
	byPost := make(map[uuid.UUID]*voteModels.Vote, len(votes))
	for _, v := range votes {
		cp := *v
		byPost[cp.PostId] = &cp
	}

	s.mu.Lock()
	s.votes[userID] = byPost
	s.mu.Unlock()

	s.notify(Event{Kind: EventVote, UserID: userID})
}

// SetVote overwrites the actor's cached vote record for one post
// without touching any score. Used when a conflict re-fetch reveals the
// cache was stale; nil record means "no vote".
func (s *Store) SetVote(userID, postID uuid.UUID, vote *voteModels.Vote) {
	s.mu.Lock()
	byPost, ok := s.votes[userID]
	if !ok {
		byPost = make(map[uuid.UUID]*voteModels.Vote)
		s.votes[userID] = byPost
	}
	if vote == nil {
		delete(byPost, postID)
	} else {
		cp := *vote
		byPost[postID] = &cp
	}
	s.mu.Unlock()

	s.notify(Event{Kind: EventVote, UserID: userID, PostID: postID})
}

// ClearVotes drops all cached vote records for the actor (sign-out).
func (s *Store) ClearVotes(userID uuid.UUID) {
	s.mu.Lock()
	delete(s.votes, userID)
	s.mu.Unlock()

	s.notify(Event{Kind: EventVote, UserID: userID})
}

// CommitVote applies the committed vote delta in one step: the record
// change and the score adjustment land together, on the post list and
// on the selected post, exactly as they landed in the store. A nil
// vote means the record was deleted.
func (s *Store) CommitVote(userID, postID uuid.UUID, vote *voteModels.Vote, scoreDelta int) {
	s.mu.Lock()
	byPost, ok := s.votes[userID]
	if !ok {
		byPost = make(map[uuid.UUID]*voteModels.Vote)
		s.votes[userID] = byPost
	}
	if vote == nil {
		delete(byPost, postID)
	} else {
		cp := *vote
		byPost[postID] = &cp
	}

	if p := s.findPost(postID); p != nil {
		p.Score += int64(scoreDelta)
	}
	if s.selectedPost != nil && s.selectedPost.ObjectId == postID {
		s.selectedPost.Score += int64(scoreDelta)
	}
	s.mu.Unlock()

	s.notify(Event{Kind: EventVote, UserID: userID, PostID: postID})
}

// --- Communities / memberships ---

// SetCurrentCommunity caches the community currently being viewed.
func (s *Store) SetCurrentCommunity(community *communityModels.Community) {
	cp := *community

	s.mu.Lock()
	s.currentCommunity = &cp
	s.mu.Unlock()

	s.notify(Event{Kind: EventCommunity, CommunityID: community.ObjectId})
}

// CurrentCommunity returns a copy of the community being viewed, or nil.
func (s *Store) CurrentCommunity() *communityModels.Community {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentCommunity == nil {
		return nil
	}
	cp := *s.currentCommunity
	return &cp
}

// IsJoined reports whether the actor's cached membership set contains
// the community. This is the state join/leave decisions are made
// against.
func (s *Store) IsJoined(userID, communityID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCommunity, ok := s.memberships[userID]
	if !ok {
		return false
	}
	_, joined := byCommunity[communityID]
	return joined
}

// Memberships returns copies of the actor's cached membership snippets.
func (s *Store) Memberships(userID uuid.UUID) []*communityModels.Membership {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCommunity := s.memberships[userID]
	copies := make([]*communityModels.Membership, 0, len(byCommunity))
	for _, m := range byCommunity {
		cp := *m
		copies = append(copies, &cp)
	}
	return copies
}

// ReplaceMemberships swaps in a freshly fetched membership set for the
// actor.
func (s *Store) ReplaceMemberships(userID uuid.UUID, memberships []*communityModels.Membership) {
	byCommunity := make(map[uuid.UUID]*communityModels.Membership, len(memberships))
	for _, m := range memberships {
		cp := *m
		byCommunity[cp.CommunityId] = &cp
	}

	s.mu.Lock()
	s.memberships[userID] = byCommunity
	s.mu.Unlock()

	s.notify(Event{Kind: EventMembership, UserID: userID})
}

// ClearMemberships drops all cached memberships for the actor (sign-out).
func (s *Store) ClearMemberships(userID uuid.UUID) {
	s.mu.Lock()
	delete(s.memberships, userID)
	s.mu.Unlock()

	s.notify(Event{Kind: EventMembership, UserID: userID})
}

// CommitMembership applies a committed join or leave in one step: the
// membership change and the member-count adjustment land together. A
// nil membership means the actor left; counterDelta carries the same
// value the store transaction applied.
func (s *Store) CommitMembership(userID, communityID uuid.UUID, membership *communityModels.Membership, counterDelta int) {
	s.mu.Lock()
	byCommunity, ok := s.memberships[userID]
	if !ok {
		byCommunity = make(map[uuid.UUID]*communityModels.Membership)
		s.memberships[userID] = byCommunity
	}
	if membership == nil {
		delete(byCommunity, communityID)
	} else {
		cp := *membership
		byCommunity[communityID] = &cp
	}

	if s.currentCommunity != nil && s.currentCommunity.ObjectId == communityID {
		s.currentCommunity.MemberCount += int64(counterDelta)
	}
	s.mu.Unlock()

	s.notify(Event{Kind: EventMembership, UserID: userID, CommunityID: communityID})
}
