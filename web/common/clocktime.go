package common

import (
	"encoding/json"
	"fmt"
	"time"

	"timeclock.app/timeclock/utils"
)

// ClockTime is a bare wall-clock value like "09:00" or "17:30:15".
type ClockTime struct {
	time.Time
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		c.Time = time.Time{}
		return nil
	}

	t, err := utils.ParseClock(s)
	if err != nil {
		return fmt.Errorf("invalid clock time: %v", err)
	}

	c.Time = t
	return nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	if c.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(c.Format(utils.ClockLayout))
}
