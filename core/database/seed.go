package database

import (
	"context"
	"time"

	"campus-events-api/core/constants"
	"campus-events-api/core/logger"
	"campus-events-api/core/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq"
)

type seedUser struct {
	name       string
	email      string
	university string
	age        int
	hobby      string
	mbti       string
	languages  string
}

type seedEvent struct {
	titleEn     string
	titleKo     string
	description string
	locationEn  string
	locationKo  string
	organizer   string
	category    string
	address     string
	lat, lng    float64
	max         int
	price       float64
	tags        []string
	daysAhead   int
}

var seedUsers = []seedUser{
	{"huimin", "huimin@yonsei.ac.kr", "Yonsei University", 21, "Photography, Reading, Gaming", "ENFP", "Korean, English"},
	{"Sarah Kim", "sarah@snu.ac.kr", "Seoul National University", 22, "Music, Dancing, Cooking", "ISFJ", "Korean, English, Japanese"},
	{"Alex Park", "alex@korea.ac.kr", "Korea University", 23, "Sports, Fitness, Travel", "ESTP", "Korean, English"},
	{"Emma Lee", "emma@ewha.ac.kr", "Ewha Womans University", 20, "Art, Design, Photography", "INFP", "Korean, English, Japanese"},
}

var seedEvents = []seedEvent{
	{"Korean Language Exchange", "한국어 언어교환", "Practice Korean and English over coffee.",
		"Hongdae Cafe Street", "홍대 카페거리", "Global Lounge", constants.EventCategoryLanguage,
		"Seoul, Mapo-gu, Hongdae", 37.5563, 126.9236, 20, 0, []string{"language", "korean", "english"}, 3},
	{"Campus Basketball League", "캠퍼스 농구 리그", "Weekly pickup games, all levels welcome.",
		"SNU Gymnasium", "서울대 체육관", "Sports Club Union", constants.EventCategorySports,
		"Seoul, Gwanak-gu", 37.4591, 126.9520, 30, 0, []string{"sports", "basketball"}, 5},
	{"Fall Culture Festival", "가을 문화 축제", "Food stalls, performances, and exhibitions.",
		"Yonsei Main Quad", "연세대 중앙 잔디", "Student Council", constants.EventCategoryCultural,
		"Seoul, Seodaemun-gu", 37.5642, 126.9386, 200, 5, []string{"festival", "culture", "food"}, 10},
	{"Machine Learning Study Group", "머신러닝 스터디", "Weekly paper reading and coding sessions.",
		"Korea Univ. Science Library", "고려대 과학도서관", "AI Society", constants.EventCategoryAcademic,
		"Seoul, Seongbuk-gu", 37.5895, 127.0323, 15, 0, []string{"academic", "ml", "study"}, 7},
	{"Photography Club Walk", "사진 동아리 출사", "Golden-hour walk along the Han river.",
		"Banpo Hangang Park", "반포한강공원", "Shutter Club", constants.EventCategoryClub,
		"Seoul, Seocho-gu", 37.5081, 126.9956, 12, 0, []string{"club", "photography"}, 4},
	{"International Student Mixer", "국제학생 교류회", "Meet students from other universities.",
		"Itaewon Rooftop Lounge", "이태원 루프탑 라운지", "Global Network", constants.EventCategorySocial,
		"Seoul, Yongsan-gu", 37.5345, 126.9946, 50, 10, []string{"social", "networking"}, 6},
}

// Seed inserts sample users and events when the tables are empty. Dev convenience
// only, guarded by the DB_SEED flag.
func Seed(ctx context.Context, db IDatabase) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM events`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("password123")
	if err != nil {
		return err
	}

	userIDs := make([]uuid.UUID, 0, len(seedUsers))
	for _, u := range seedUsers {
		id := uuid.New()
		err := db.ExecContext(ctx, `
			INSERT INTO users (id, name, email, password_hash, age, university, hobby, mbti, languages)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (email) DO NOTHING
		`, id, u.name, u.email, hash, u.age, u.university, u.hobby, u.mbti, u.languages)
		if err != nil {
			logger.Error("Database:Seed:User:Error:", err)
			return err
		}
		userIDs = append(userIDs, id)
	}

	for i, e := range seedEvents {
		title := utils.MustJSON(map[string]string{constants.LocaleEnglish: e.titleEn, constants.LocaleKorean: e.titleKo})
		desc := utils.MustJSON(map[string]string{constants.LocaleEnglish: e.description})
		loc := utils.MustJSON(map[string]string{constants.LocaleEnglish: e.locationEn, constants.LocaleKorean: e.locationKo})
		org := utils.MustJSON(map[string]string{constants.LocaleEnglish: e.organizer})

		err := db.ExecContext(ctx, `
			INSERT INTO events (id, code, slug, title, description, location, organizer, category,
			                    starts_at, address, lat, lng, attendees, max_attendees, price, tags, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, $13, $14, $15, $16)
		`,
			uuid.New(), utils.GenerateID(), slug.Make(e.titleEn), title, desc, loc, org, e.category,
			time.Now().AddDate(0, 0, e.daysAhead), e.address, e.lat, e.lng, e.max, e.price,
			pq.StringArray(e.tags), userIDs[i%len(userIDs)])
		if err != nil {
			logger.Error("Database:Seed:Event:Error:", err)
			return err
		}
	}

	logger.Info("Seeded sample data", "users", len(seedUsers), "events", len(seedEvents))
	return nil
}
