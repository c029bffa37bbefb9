// Package cron parses cron expressions with a seconds field and an optional
// year field, and computes when they fire next.
//
//	s, err := cron.Parse("0 30 9 ? * MON-FRI")
//	if err != nil {
//		return err
//	}
//	next, ok := s.Next(time.Now())
//
// Next never returns a time at or before its argument. It reports false
// once the schedule has no run left before MaxYear.
package cron
