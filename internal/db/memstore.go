package db

import (
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/northlight-av/vitrine/internal/model"
)

// MemStore is an in-memory Store used by the engine package tests,
// mirroring pgStore semantics: sql.ErrNoRows on misses, the same
// orderings, and the same conditional-update behavior.
type MemStore struct {
	mu sync.Mutex

	nextMediaID   int
	nextScreenID  int
	nextSponsorID int
	nextSettingID int

	media        map[int]model.MediaItem
	screens      map[int]model.Screen
	associations map[int][]model.Association // keyed by screen ID, kept in position order
	sponsors     map[int][]model.Sponsor
	settings     map[string]model.Setting
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		nextMediaID:   1,
		nextScreenID:  1,
		nextSponsorID: 1,
		nextSettingID: 1,
		media:         make(map[int]model.MediaItem),
		screens:       make(map[int]model.Screen),
		associations:  make(map[int][]model.Association),
		sponsors:      make(map[int][]model.Sponsor),
		settings:      make(map[string]model.Setting),
	}
}

func (s *MemStore) CreateMedia(
	filename, originalFilename, kind string,
	duration, orderIndex int,
	isGlobal bool,
) (model.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := model.MediaItem{
		ID:               s.nextMediaID,
		Filename:         filename,
		OriginalFilename: originalFilename,
		Kind:             kind,
		Duration:         duration,
		Active:           true,
		OrderIndex:       orderIndex,
		IsGlobal:         isGlobal,
		CreatedAt:        time.Now().UTC(),
	}
	s.nextMediaID++
	s.media[m.ID] = m
	return m, nil
}

func (s *MemStore) GetMediaByID(id int) (model.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.media[id]
	if !ok {
		return model.MediaItem{}, sql.ErrNoRows
	}
	return m, nil
}

func (s *MemStore) ListMedia() ([]model.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortMedia(s.mediaSlice(func(model.MediaItem) bool { return true })), nil
}

func (s *MemStore) ListActiveGlobalMedia() ([]model.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortMedia(s.mediaSlice(func(m model.MediaItem) bool {
		return m.Active && m.IsGlobal
	})), nil
}

func (s *MemStore) ListExpiredMedia(now time.Time) ([]model.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.mediaSlice(func(m model.MediaItem) bool { return m.Expired(now) })
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) CountMedia() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.media), nil
}

func (s *MemStore) UpdateMediaDuration(id, duration int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.media[id]; ok {
		m.Duration = duration
		s.media[id] = m
	}
	return nil
}

func (s *MemStore) UpdateMediaExpiry(id int, expireAt *time.Time, autoDelete bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.media[id]; ok {
		m.ExpireAt = expireAt
		m.AutoDelete = autoDelete
		s.media[id] = m
	}
	return nil
}

func (s *MemStore) SetMediaActive(id int, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.media[id]; ok {
		m.Active = active
		s.media[id] = m
	}
	return nil
}

func (s *MemStore) RetireMedia(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.media[id]
	if !ok || !m.Active {
		return false, nil
	}
	m.Active = false
	s.media[id] = m
	return true, nil
}

func (s *MemStore) ReorderMedia(orderedIDs []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, id := range orderedIDs {
		if m, ok := s.media[id]; ok {
			m.OrderIndex = idx
			s.media[id] = m
		}
	}
	return nil
}

func (s *MemStore) DeleteMedia(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.media[id]
	delete(s.media, id)
	for screenID, assocs := range s.associations {
		kept := assocs[:0]
		for _, a := range assocs {
			if a.MediaID != id {
				kept = append(kept, a)
			}
		}
		s.associations[screenID] = kept
	}
	return existed, nil
}

func (s *MemStore) CreateScreen(
	name string,
	description, location *string,
	publicID, pairingCode string,
) (model.Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	sc := model.Screen{
		ID:            s.nextScreenID,
		PublicID:      publicID,
		Name:          name,
		Description:   description,
		Location:      location,
		Active:        true,
		PairingCode:   pairingCode,
		DisplayMode:   model.DisplayModeMedia,
		CarouselSpeed: "normal",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.nextScreenID++
	s.screens[sc.ID] = sc
	return sc, nil
}

func (s *MemStore) GetScreenByID(id int) (model.Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.screens[id]
	if !ok {
		return model.Screen{}, sql.ErrNoRows
	}
	return sc, nil
}

func (s *MemStore) GetScreenByPublicID(publicID string) (model.Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sc := range s.screens {
		if sc.PublicID == publicID {
			return sc, nil
		}
	}
	return model.Screen{}, sql.ErrNoRows
}

func (s *MemStore) GetScreenByPairingCode(code string) (model.Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sc := range s.screens {
		if sc.PairingCode == code {
			return sc, nil
		}
	}
	return model.Screen{}, sql.ErrNoRows
}

func (s *MemStore) ListScreens() ([]model.Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Screen, 0, len(s.screens))
	for _, sc := range s.screens {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemStore) UpdateScreen(id int, p UpdateScreenParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.screens[id]
	if !ok {
		return nil
	}
	if p.Name != nil {
		sc.Name = *p.Name
	}
	if p.Description != nil {
		sc.Description = p.Description
	}
	if p.Location != nil {
		sc.Location = p.Location
	}
	if p.DisplayMode != nil {
		sc.DisplayMode = *p.DisplayMode
	}
	if p.RedirectURL != nil {
		sc.RedirectURL = p.RedirectURL
	}
	if p.IframeURL != nil {
		sc.IframeURL = p.IframeURL
	}
	if p.IframeMarginLeft != nil {
		sc.IframeMarginLeft = *p.IframeMarginLeft
	}
	if p.IframeMarginRight != nil {
		sc.IframeMarginRight = *p.IframeMarginRight
	}
	if p.JSONAPIURL != nil {
		sc.JSONAPIURL = p.JSONAPIURL
	}
	if p.JSONAPITemplate != nil {
		sc.JSONAPITemplate = p.JSONAPITemplate
	}
	if p.LegacyRedirectEnabled != nil {
		sc.LegacyRedirectEnabled = *p.LegacyRedirectEnabled
	}
	if p.LegacyRedirectURL != nil {
		sc.LegacyRedirectURL = p.LegacyRedirectURL
	}
	if p.CarouselEnabled != nil {
		sc.CarouselEnabled = *p.CarouselEnabled
	}
	if p.CarouselSpeed != nil {
		sc.CarouselSpeed = *p.CarouselSpeed
	}
	sc.UpdatedAt = time.Now().UTC()
	s.screens[id] = sc
	return nil
}

func (s *MemStore) SetScreenActive(id int, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sc, ok := s.screens[id]; ok {
		sc.Active = active
		sc.UpdatedAt = time.Now().UTC()
		s.screens[id] = sc
	}
	return nil
}

func (s *MemStore) DeleteScreen(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.screens, id)
	delete(s.associations, id)
	delete(s.sponsors, id)
	return nil
}

func (s *MemStore) ReplaceScreenMedia(screenID int, mediaIDs []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := make([]model.Association, 0, len(mediaIDs))
	for idx, mediaID := range mediaIDs {
		if _, ok := s.media[mediaID]; !ok {
			continue
		}
		fresh = append(fresh, model.Association{
			ScreenID: screenID,
			MediaID:  mediaID,
			Position: idx,
		})
	}
	s.associations[screenID] = fresh
	return nil
}

func (s *MemStore) AppendScreenMedia(screenID, mediaID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := 0
	for _, a := range s.associations[screenID] {
		if a.Position >= next {
			next = a.Position + 1
		}
	}
	s.associations[screenID] = append(s.associations[screenID], model.Association{
		ScreenID: screenID,
		MediaID:  mediaID,
		Position: next,
	})
	return nil
}

func (s *MemStore) SetScreenMediaDuration(screenID, mediaID int, duration *int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assocs := s.associations[screenID]
	for i, a := range assocs {
		if a.MediaID == mediaID {
			assocs[i].Duration = duration
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) ListScreenMedia(screenID int) ([]ScreenMediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assocs := append([]model.Association(nil), s.associations[screenID]...)
	sort.Slice(assocs, func(i, j int) bool { return assocs[i].Position < assocs[j].Position })

	out := make([]ScreenMediaItem, 0, len(assocs))
	for _, a := range assocs {
		m, ok := s.media[a.MediaID]
		if !ok {
			continue
		}
		out = append(out, ScreenMediaItem{
			MediaID:         a.MediaID,
			Position:        a.Position,
			Duration:        a.Duration,
			Kind:            m.Kind,
			Filename:        m.Filename,
			DefaultDuration: m.Duration,
			Active:          m.Active,
		})
	}
	return out, nil
}

func (s *MemStore) AddScreenSponsor(screenID int, filename string) (model.Sponsor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := 0
	for _, sp := range s.sponsors[screenID] {
		if sp.Position >= next {
			next = sp.Position + 1
		}
	}
	sp := model.Sponsor{
		ID:        s.nextSponsorID,
		ScreenID:  screenID,
		Filename:  filename,
		Position:  next,
		CreatedAt: time.Now().UTC(),
	}
	s.nextSponsorID++
	s.sponsors[screenID] = append(s.sponsors[screenID], sp)
	return sp, nil
}

func (s *MemStore) ListScreenSponsors(screenID int) ([]model.Sponsor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]model.Sponsor(nil), s.sponsors[screenID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *MemStore) DeleteScreenSponsor(screenID, sponsorID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.sponsors[screenID][:0]
	for _, sp := range s.sponsors[screenID] {
		if sp.ID != sponsorID {
			kept = append(kept, sp)
		}
	}
	s.sponsors[screenID] = kept
	return nil
}

func (s *MemStore) GetSetting(key string) (model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	setting, ok := s.settings[key]
	if !ok {
		return model.Setting{}, sql.ErrNoRows
	}
	return setting, nil
}

func (s *MemStore) UpsertSetting(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	setting, ok := s.settings[key]
	if !ok {
		setting = model.Setting{ID: s.nextSettingID, Key: key}
		s.nextSettingID++
	}
	setting.Value = value
	setting.UpdatedAt = time.Now().UTC()
	s.settings[key] = setting
	return nil
}

func (s *MemStore) ListSettings() ([]model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Setting, 0, len(s.settings))
	for _, setting := range s.settings {
		out = append(out, setting)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *MemStore) mediaSlice(keep func(model.MediaItem) bool) []model.MediaItem {
	out := make([]model.MediaItem, 0, len(s.media))
	for _, m := range s.media {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// sortMedia applies the display ordering: order_index ascending, then
// newest first.
func sortMedia(items []model.MediaItem) []model.MediaItem {
	sort.Slice(items, func(i, j int) bool {
		if items[i].OrderIndex != items[j].OrderIndex {
			return items[i].OrderIndex < items[j].OrderIndex
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}
