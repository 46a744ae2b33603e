package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/campushub/timetable-api/internal/conflict"
	"github.com/campushub/timetable-api/internal/models"
	"github.com/campushub/timetable-api/internal/repository"
	"github.com/campushub/timetable-api/pkg/config"
	"github.com/campushub/timetable-api/pkg/database"
)

// Candidate grid for the greedy filler: Monday through Friday, one-hour
// periods from 08:00 to 16:00.
var (
	seedDays    = []int{0, 1, 2, 3, 4}
	seedPeriods = buildPeriods(8*60, 16*60, 60)
)

func buildPeriods(start, end, step int) []conflict.Interval {
	var periods []conflict.Interval
	for t := start; t+step <= end; t += step {
		periods = append(periods, conflict.Interval{Start: t, End: t + step})
	}
	return periods
}

func main() {
	var (
		timetableID     string
		sessionsPerWeek int
		timeout         time.Duration
	)
	flag.StringVar(&timetableID, "timetable", "", "Target timetable ID (falls back to SEED_TIMETABLE_ID)")
	flag.IntVar(&sessionsPerWeek, "sessions", 0, "Sessions per course per week (falls back to SEED_SESSIONS_PER_WEEK)")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if timetableID == "" {
		timetableID = cfg.Seed.TimetableID
	}
	if timetableID == "" {
		log.Fatal("no timetable id: pass -timetable or set SEED_TIMETABLE_ID")
	}
	if sessionsPerWeek <= 0 {
		sessionsPerWeek = cfg.Seed.SessionsPerWeek
	}
	if sessionsPerWeek <= 0 {
		sessionsPerWeek = 3
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	timetableRepo := repository.NewTimetableRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	roomRepo := repository.NewRoomRepository(db)

	timetable, err := timetableRepo.FindByID(ctx, timetableID)
	if err != nil {
		log.Fatalf("failed to load timetable %s: %v", timetableID, err)
	}
	scope := timetable.Scope()

	courses, err := courseRepo.ListByScope(ctx, timetable.DepartmentID, scope.AcademicYear, scope.Semester)
	if err != nil {
		log.Fatalf("failed to load courses: %v", err)
	}
	rooms, err := roomRepo.ListAvailable(ctx)
	if err != nil {
		log.Fatalf("failed to load rooms: %v", err)
	}
	if len(courses) == 0 || len(rooms) == 0 {
		log.Fatalf("nothing to seed: %d courses, %d rooms", len(courses), len(rooms))
	}

	index := conflict.NewMemoryIndex()
	preloaded, err := preloadScope(ctx, slotRepo, courseRepo, timetableRepo, scope, index)
	if err != nil {
		log.Fatalf("failed to preload existing slots: %v", err)
	}
	log.Printf("preloaded %d existing bookings in scope %s", preloaded, scope)

	placed, skipped := 0, 0
	for _, course := range courses {
		want := course.WeeklySessions
		if want <= 0 {
			want = sessionsPerWeek
		}
		got := fillCourse(ctx, slotRepo, index, timetable, course, rooms, want)
		placed += got
		if got < want {
			skipped += want - got
			log.Printf("course %s: placed %d of %d sessions", course.Code, got, want)
		}
	}

	fmt.Printf("Seeding done: %d slots placed, %d sessions unplaceable\n", placed, skipped)
	if placed == 0 {
		os.Exit(1)
	}
}

// fillCourse walks the day/period/room grid in order and commits the first
// candidates the index accepts. Seeding is best effort: an unplaceable
// session is reported, not fatal.
func fillCourse(
	ctx context.Context,
	slots *repository.SlotRepository,
	index *conflict.MemoryIndex,
	timetable *models.Timetable,
	course models.Course,
	rooms []models.Room,
	want int,
) int {
	scope := timetable.Scope()
	placed := 0

	// One session per weekday at most, spreading the course across the week.
	for _, day := range seedDays {
		if placed >= want {
			break
		}
		for _, period := range seedPeriods {
			committed := false
			for _, room := range rooms {
				roomKey := conflict.Key{Scope: scope, Kind: models.ResourceRoom, ResourceID: room.ID, Day: day}
				if index.Has(roomKey, period, "") {
					continue
				}
				var teacherKey *conflict.Key
				if course.TeacherID != nil {
					key := conflict.Key{Scope: scope, Kind: models.ResourceTeacher, ResourceID: *course.TeacherID, Day: day}
					if index.Has(key, period, "") {
						break // a different room won't free the teacher for this period
					}
					teacherKey = &key
				}

				slot := models.TimetableSlot{
					TimetableID: timetable.ID,
					CourseID:    course.ID,
					RoomID:      room.ID,
					DayOfWeek:   day,
					StartTime:   conflict.FormatClock(period.Start),
					EndTime:     conflict.FormatClock(period.End),
				}
				if err := slots.Insert(ctx, nil, &slot); err != nil {
					log.Printf("course %s: insert failed on day %d %s: %v", course.Code, day, period, err)
					continue
				}
				index.Register(roomKey, period, slot.ID)
				if teacherKey != nil {
					index.Register(*teacherKey, period, slot.ID)
				}
				placed++
				committed = true
				break
			}
			if committed {
				break
			}
		}
	}
	return placed
}

// preloadScope registers every committed slot in the scope into the memory
// index so seeded candidates are checked against existing bookings without a
// storage round-trip per candidate.
func preloadScope(
	ctx context.Context,
	slots *repository.SlotRepository,
	courses *repository.CourseRepository,
	timetables *repository.TimetableRepository,
	scope models.Scope,
	index *conflict.MemoryIndex,
) (int, error) {
	peers, _, err := timetables.List(ctx, models.TimetableFilter{
		AcademicYear: scope.AcademicYear,
		Semester:     scope.Semester,
		PageSize:     100,
	})
	if err != nil {
		return 0, err
	}

	teacherByCourse := make(map[string]*string)
	count := 0
	for _, peer := range peers {
		existing, err := slots.ListByTimetable(ctx, peer.ID)
		if err != nil {
			return count, err
		}
		for _, slot := range existing {
			interval, err := conflict.ParseInterval(slot.StartTime, slot.EndTime)
			if err != nil {
				continue
			}
			index.Register(conflict.Key{Scope: scope, Kind: models.ResourceRoom, ResourceID: slot.RoomID, Day: slot.DayOfWeek}, interval, slot.ID)

			teacherID, seen := teacherByCourse[slot.CourseID]
			if !seen {
				course, err := courses.FindByID(ctx, slot.CourseID)
				if err != nil {
					return count, err
				}
				teacherID = course.TeacherID
				teacherByCourse[slot.CourseID] = teacherID
			}
			if teacherID != nil {
				index.Register(conflict.Key{Scope: scope, Kind: models.ResourceTeacher, ResourceID: *teacherID, Day: slot.DayOfWeek}, interval, slot.ID)
			}
			count++
		}
	}
	return count, nil
}
