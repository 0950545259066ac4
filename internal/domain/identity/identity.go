// Package identity resolves roster, owner and player ids to display names
// for one league-season.
package identity

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/position"
	"github.com/okian/gridiron/pkg/metrics"
)

// Name is an optional display string. The zero value is absent.
type Name struct {
	value string
	ok    bool
}

// Some returns a present name, or an absent one for the empty string.
func Some(s string) Name {
	if s == "" {
		return Name{}
	}
	return Name{value: s, ok: true}
}

// Get returns the value and whether it is present.
func (n Name) Get() (string, bool) { return n.value, n.ok }

// Or returns the value or fallback when absent.
func (n Name) Or(fallback string) string {
	if n.ok {
		return n.value
	}
	return fallback
}

// Identity is who stands behind a roster.
type Identity struct {
	RosterID    int
	OwnerID     string
	DisplayName Name
	TeamName    Name
}

// TeamLabel prefers the team name, then "Team <display name>", then "Team <owner id>".
func (i Identity) TeamLabel() string {
	if v, ok := i.TeamName.Get(); ok {
		return v
	}
	if v, ok := i.DisplayName.Get(); ok {
		return "Team " + v
	}
	if i.OwnerID != "" {
		return "Team " + i.OwnerID
	}
	return placeholder(i.RosterID)
}

// DisplayLabel prefers the display name, then the owner id.
func (i Identity) DisplayLabel() string {
	if v, ok := i.DisplayName.Get(); ok {
		return v
	}
	if i.OwnerID != "" {
		return i.OwnerID
	}
	return placeholder(i.RosterID)
}

func placeholder(rosterID int) string { return "Team " + strconv.Itoa(rosterID) }

// Resolver is the lookup table for one season. It is read-only after New.
type Resolver struct {
	rosters map[int]Identity
	owners  map[string]Identity
	players model.Players
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPlayers attaches the player catalogue used for player names and positions.
func WithPlayers(players model.Players) Option {
	return func(r *Resolver) {
		if players != nil {
			r.players = players
		}
	}
}

// New builds a resolver. Rosters without an owner are left unresolved;
// a roster whose owner has no display record resolves to its owner id.
func New(rosters []model.Roster, owners []model.Owner, opts ...Option) *Resolver {
	r := &Resolver{
		rosters: make(map[int]Identity, len(rosters)),
		owners:  make(map[string]Identity, len(owners)),
		players: model.Players{},
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, o := range owners {
		if o.UserID == "" {
			continue
		}
		r.owners[o.UserID] = Identity{
			OwnerID:     o.UserID,
			DisplayName: Some(o.DisplayName),
			TeamName:    Some(o.Metadata.TeamName),
		}
	}
	for _, ro := range rosters {
		if ro.OwnerID == "" {
			continue
		}
		id, ok := r.owners[ro.OwnerID]
		if !ok {
			id = Identity{OwnerID: ro.OwnerID}
		}
		id.RosterID = ro.RosterID
		r.rosters[ro.RosterID] = id
	}
	return r
}

// Lookup returns the identity of a roster.
func (r *Resolver) Lookup(rosterID int) (Identity, error) {
	id, ok := r.rosters[rosterID]
	if !ok {
		return Identity{RosterID: rosterID}, fmt.Errorf("roster %d: %w", rosterID, ErrMissingReference)
	}
	return id, nil
}

// Owner returns the identity of a league member.
func (r *Resolver) Owner(ownerID string) (Identity, error) {
	id, ok := r.owners[ownerID]
	if !ok {
		return Identity{OwnerID: ownerID}, fmt.Errorf("owner %q: %w", ownerID, ErrMissingReference)
	}
	return id, nil
}

// OwnerOf returns the owner id of a roster.
func (r *Resolver) OwnerOf(rosterID int) (string, bool) {
	id, ok := r.rosters[rosterID]
	return id.OwnerID, ok
}

// TeamLabel returns the team label of a roster, "Team <roster id>" when unknown.
func (r *Resolver) TeamLabel(rosterID int) string {
	id, err := r.Lookup(rosterID)
	if err != nil {
		metrics.RecordMissingReference("roster")
	}
	return id.TeamLabel()
}

// DisplayLabel returns the manager display label of a roster.
func (r *Resolver) DisplayLabel(rosterID int) string {
	id, err := r.Lookup(rosterID)
	if err != nil {
		metrics.RecordMissingReference("roster")
	}
	return id.DisplayLabel()
}

// OwnerTeamLabel returns the team label of a member, "Team <owner id>" when unknown.
func (r *Resolver) OwnerTeamLabel(ownerID string) string {
	id, err := r.Owner(ownerID)
	if err != nil {
		metrics.RecordMissingReference("owner")
	}
	return id.TeamLabel()
}

// OwnerDisplay returns a member's display name, the owner id when unknown.
func (r *Resolver) OwnerDisplay(ownerID string) string {
	id, err := r.Owner(ownerID)
	if err != nil {
		metrics.RecordMissingReference("owner")
	}
	return id.DisplayLabel()
}

// PlayerName returns the player's full name. Unknown ids, which include team
// defenses keyed by abbreviation, fall back to the id itself.
func (r *Resolver) PlayerName(playerID string) string {
	if p, ok := r.players[playerID]; ok && p.FullName != "" {
		return p.FullName
	}
	return playerID
}

// PlayerPositions returns the raw position tags of a player.
func (r *Resolver) PlayerPositions(playerID string) []string {
	return r.players[playerID].FantasyPositions
}

// Eligibility builds the category table for every catalogued player.
func (r *Resolver) Eligibility() position.Eligibility {
	e := make(position.Eligibility, len(r.players))
	for id, p := range r.players {
		if s := position.NewSet(p.FantasyPositions...); len(s) > 0 {
			e[id] = s
		}
	}
	return e
}

// RosterIDs returns every resolvable roster id, ascending.
func (r *Resolver) RosterIDs() []int {
	ids := make([]int, 0, len(r.rosters))
	for id := range r.rosters {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// OwnerIDs returns the owner id of every resolvable roster, ordered by roster id.
func (r *Resolver) OwnerIDs() []string {
	ids := r.RosterIDs()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.rosters[id].OwnerID)
	}
	return out
}
