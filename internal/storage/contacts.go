package storage

import (
	"log"
	"time"
)

// Contact is one known user, updated on every inbound message and on group
// membership events.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	IsBot     bool      `json:"isBot"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
}

// Group is one chat group the bot has seen. ChannelID is the channel
// announcements are delivered to; groups without one are skipped by
// broadcasts.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ChannelID string    `json:"channelId,omitempty"`
	JoinedAt  time.Time `json:"joinedAt"`
	LeftAt    time.Time `json:"leftAt,omitempty"`
	Active    bool      `json:"active"`
}

// UpsertContact creates or refreshes a contact record, preserving FirstSeen.
func (s *Storage) UpsertContact(c Contact) {
	now := time.Now()
	var existing Contact
	if s.Get(TableContacts, c.ID, &existing) {
		c.FirstSeen = existing.FirstSeen
		if c.Username == "" {
			c.Username = existing.Username
		}
	} else {
		c.FirstSeen = now
		log.Printf("[INFO] new contact: %s (%s)", c.Name, c.ID)
	}
	c.LastSeen = now
	s.Set(TableContacts, c.ID, c)
}

// AllContactIDs returns the IDs of every known contact.
func (s *Storage) AllContactIDs() []string {
	return s.Table(TableContacts).Keys()
}

// UpsertGroup records a group as active, preserving JoinedAt on refresh.
func (s *Storage) UpsertGroup(g Group) {
	var existing Group
	if s.Get(TableGroups, g.ID, &existing) {
		g.JoinedAt = existing.JoinedAt
		if g.ChannelID == "" {
			g.ChannelID = existing.ChannelID
		}
	} else {
		g.JoinedAt = time.Now()
		log.Printf("[INFO] new group: %s (%s)", g.Name, g.ID)
	}
	g.Active = true
	s.Set(TableGroups, g.ID, g)
}

// MarkGroupLeft records that the bot left or was removed from a group.
func (s *Storage) MarkGroupLeft(groupID string) {
	var g Group
	if !s.Get(TableGroups, groupID, &g) {
		return
	}
	g.Active = false
	g.LeftAt = time.Now()
	s.Set(TableGroups, groupID, g)
}

// AllGroupIDs returns the IDs of every known group.
func (s *Storage) AllGroupIDs() []string {
	return s.Table(TableGroups).Keys()
}

// TouchActivity stamps a user's last-activity time.
func (s *Storage) TouchActivity(userID string) {
	s.Set(TableLastActivity, userID, time.Now())
}

// Setting reads a named entry from the config table into dest.
func (s *Storage) Setting(name string, dest any) bool {
	return s.Get(TableConfig, name, dest)
}

// SetSetting stores a named entry in the config table.
func (s *Storage) SetSetting(name string, value any) {
	s.Set(TableConfig, name, value)
}
