package schedule

import (
	"sort"
)

// TeacherTimeline returns the sessions the teacher is responsible for, in table order,
// leaving out excludeID.
func TeacherTimeline(teacherID string, sessions []Session, classes map[string]Class, excludeID string) []Session {
	var timeline []Session
	if teacherID == "" {
		return timeline
	}
	for _, s := range sessions {
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		if effectiveTeacher(s, classes) == teacherID {
			timeline = append(timeline, s)
		}
	}
	return timeline
}

// FindConflict returns the session that blocks teacherID from teaching during candidate, or nil.
// When several overlap, the one starting earliest is reported; ties go to table order.
func FindConflict(candidate Interval, teacherID string, sessions []Session, classes map[string]Class, excludeID string) *Session {
	if teacherID == "" {
		return nil
	}
	return firstOverlap(candidate, TeacherTimeline(teacherID, sessions, classes, excludeID))
}

func firstOverlap(candidate Interval, timeline []Session) *Session {
	var found *Session
	for i := range timeline {
		s := &timeline[i]
		if !candidate.Overlaps(s.Interval()) {
			continue
		}
		if found == nil || s.Start.Before(found.Start) {
			found = s
		}
	}
	return found
}

// Clash is a pair of overlapping sessions of the same teacher. First starts no later than Second.
type Clash struct {
	TeacherID string
	First     Session
	Second    Session
}

// Audit scans the whole schedule for overlapping sessions per teacher. Sessions without a
// responsible teacher or without a valid interval are ignored.
func Audit(sessions []Session, classes map[string]Class) []Clash {
	byTeacher := make(map[string][]Session)
	for _, s := range sessions {
		if !s.End.After(s.Start) {
			continue
		}
		if t := effectiveTeacher(s, classes); t != "" {
			byTeacher[t] = append(byTeacher[t], s)
		}
	}

	teachers := make([]string, 0, len(byTeacher))
	for t := range byTeacher {
		teachers = append(teachers, t)
	}
	sort.Strings(teachers)

	var clashes []Clash
	for _, t := range teachers {
		timeline := byTeacher[t]
		sort.SliceStable(timeline, func(i, j int) bool { return timeline[i].Start.Before(timeline[j].Start) })
		for i := range timeline {
			for j := i + 1; j < len(timeline) && timeline[j].Start.Before(timeline[i].End); j++ {
				clashes = append(clashes, Clash{TeacherID: t, First: timeline[i], Second: timeline[j]})
			}
		}
	}
	return clashes
}
