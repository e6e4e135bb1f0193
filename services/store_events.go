package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"gathr_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type dynamoEventStore struct {
	ds *DynamoService
}

func (s *dynamoEventStore) Get(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := s.ds.GetItem(ctx, models.EventsTable, idKey(id), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *dynamoEventStore) Put(ctx context.Context, event *models.Event) error {
	return s.ds.PutItem(ctx, models.EventsTable, event)
}

func (s *dynamoEventStore) Delete(ctx context.Context, id string) error {
	return s.ds.DeleteItem(ctx, models.EventsTable, idKey(id))
}

func (s *dynamoEventStore) ListByGroups(ctx context.Context, groupIDs []string, upcomingOnly bool, page, limit int) ([]models.Event, int, error) {
	if len(groupIDs) == 0 {
		return []models.Event{}, 0, nil
	}
	values := map[string]types.AttributeValue{}
	names := map[string]string{"#g": "groupId"}
	filter := inClause("g", "g", groupIDs, values)
	var events []models.Event
	if err := s.ds.ScanItems(ctx, models.EventsTable, filter, values, names, &events); err != nil {
		return nil, 0, err
	}
	if upcomingOnly {
		now := time.Now().UTC()
		upcoming := events[:0]
		for _, e := range events {
			if !e.StartDate.Before(now) {
				upcoming = append(upcoming, e)
			}
		}
		events = upcoming
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartDate.Equal(events[j].StartDate) {
			return events[i].StartDate.Before(events[j].StartDate)
		}
		return events[i].ID < events[j].ID
	})
	return pageSlice(events, page, limit), len(events), nil
}

func (s *dynamoEventStore) ApplyAttendanceDeltas(ctx context.Context, eventID string, deltas map[string]int, attendeeCount int) error {
	values := map[string]types.AttributeValue{
		":att": &types.AttributeValueMemberN{Value: strconv.Itoa(attendeeCount)},
	}
	var addParts []string
	i := 0
	for field, delta := range deltas {
		if delta == 0 {
			continue
		}
		placeholder := ":d" + strconv.Itoa(i)
		addParts = append(addParts, field+" "+placeholder)
		values[placeholder] = &types.AttributeValueMemberN{Value: strconv.Itoa(delta)}
		i++
	}
	expr := "SET attendeeCount = :att"
	if len(addParts) > 0 {
		expr += " ADD " + strings.Join(addParts, ", ")
	}
	return s.ds.UpdateItem(ctx, models.EventsTable, idKey(eventID), expr, values, nil)
}

func (s *dynamoEventStore) SetCounters(ctx context.Context, eventID string, going, maybe, notGoing, attendee int) error {
	values := map[string]types.AttributeValue{
		":g":   &types.AttributeValueMemberN{Value: strconv.Itoa(going)},
		":m":   &types.AttributeValueMemberN{Value: strconv.Itoa(maybe)},
		":n":   &types.AttributeValueMemberN{Value: strconv.Itoa(notGoing)},
		":att": &types.AttributeValueMemberN{Value: strconv.Itoa(attendee)},
	}
	expr := "SET goingCount = :g, maybeCount = :m, notGoingCount = :n, attendeeCount = :att"
	return s.ds.UpdateItem(ctx, models.EventsTable, idKey(eventID), expr, values, nil)
}

type dynamoAttendanceStore struct {
	ds *DynamoService
}

func (s *dynamoAttendanceStore) Find(ctx context.Context, eventID, userID string) (*models.EventAttendance, error) {
	filter := "#e = :e AND #u = :u"
	values := map[string]types.AttributeValue{
		":e": &types.AttributeValueMemberS{Value: eventID},
		":u": &types.AttributeValueMemberS{Value: userID},
	}
	names := map[string]string{"#e": "eventId", "#u": "userId"}
	var records []models.EventAttendance
	if err := s.ds.ScanItems(ctx, models.EventAttendanceTable, filter, values, names, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrItemNotFound
	}
	return &records[0], nil
}

func (s *dynamoAttendanceStore) Put(ctx context.Context, attendance *models.EventAttendance) error {
	return s.ds.PutItem(ctx, models.EventAttendanceTable, attendance)
}

func (s *dynamoAttendanceStore) Delete(ctx context.Context, id string) error {
	return s.ds.DeleteItem(ctx, models.EventAttendanceTable, idKey(id))
}

func (s *dynamoAttendanceStore) DeleteByEvent(ctx context.Context, eventID string) error {
	filter := "#e = :e"
	values := map[string]types.AttributeValue{
		":e": &types.AttributeValueMemberS{Value: eventID},
	}
	names := map[string]string{"#e": "eventId"}
	var records []models.EventAttendance
	if err := s.ds.ScanItems(ctx, models.EventAttendanceTable, filter, values, names, &records); err != nil {
		return err
	}
	for _, record := range records {
		if err := s.ds.DeleteItem(ctx, models.EventAttendanceTable, idKey(record.ID)); err != nil {
			return err
		}
	}
	return nil
}

func (s *dynamoAttendanceStore) CountByStatuses(ctx context.Context, eventID string, statuses ...string) (int, error) {
	values := map[string]types.AttributeValue{
		":e": &types.AttributeValueMemberS{Value: eventID},
	}
	names := map[string]string{"#e": "eventId", "#s": "status"}
	filter := "#e = :e AND " + inClause("s", "s", statuses, values)
	return s.ds.CountItems(ctx, models.EventAttendanceTable, filter, values, names)
}
