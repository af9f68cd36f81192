package service

import "time"

func (s *ConversationService) SetClock(now func() time.Time) { s.now = now }
func (s *MessageService) SetClock(now func() time.Time)      { s.now = now }
func (s *ReadStateService) SetClock(now func() time.Time)    { s.now = now }
func (s *DirectoryService) SetClock(now func() time.Time)    { s.now = now }
