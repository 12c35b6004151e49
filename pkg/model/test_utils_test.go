package model

func hm(value string) Clock {
	clock, err := ParseClock(value)
	if err != nil {
		panic(err)
	}
	return clock
}

func interval(day Day, start, end string) Interval {
	return Interval{Day: day, Start: hm(start), End: hm(end)}
}

func slot(course, id string, day Day, start, end string) TimeSlot {
	return TimeSlot{Id: id, Course: course, Interval: interval(day, start, end), Category: Lecture}
}

func constraint(kind ConstraintKind, priority Priority, day Day, start, end string) Constraint {
	return Constraint{Kind: kind, Priority: priority, Interval: interval(day, start, end)}
}

func course(id string, slots ...TimeSlot) Course {
	if slots == nil {
		slots = []TimeSlot{}
	}
	return Course{Id: id, Code: id, Name: id, Slots: slots}
}

func slotIds(solution Solution) []string {
	ids := make([]string, len(solution))
	for i, slot := range solution {
		ids[i] = slot.Id
	}
	return ids
}
