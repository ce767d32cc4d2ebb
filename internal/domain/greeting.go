package domain

import "time"

type GreetingType string

const (
	GreetingMorning     GreetingType = "morning"
	GreetingAfternoon   GreetingType = "afternoon"
	GreetingEvening     GreetingType = "evening"
	GreetingNight       GreetingType = "night"
	GreetingGoodMorning GreetingType = "good_morning"
	GreetingHello       GreetingType = "hello"
	GreetingGoodEvening GreetingType = "good_evening"
	GreetingGoodNight   GreetingType = "good_night"
)

const FallbackGreeting = "こんにちは🩷"

type GreetingPhrases struct {
	First  []string
	Repeat []string
}

// GreetingVariations maps each greeting type to the phrase sent the first time in a day and the
// phrases used on later greetings the same day.
var GreetingVariations = map[GreetingType]GreetingPhrases{
	GreetingMorning: {
		First: []string{"おはよう🩷", "おはようございます🩷"},
		Repeat: []string{
			"今日も素敵な1日になりそう🩷",
			"今日もよろしくね🩷",
			"朝から元気いっぱいですね🩷",
			"今日もゆるゆるいこうね🩷",
			"素敵な朝ですね🩷",
			"今日もキラキラしてる🩷",
			"朝から会えて嬉しい🩷",
			"今日ものんびりいきましょ🩷",
			"ゆったりした朝だね🩷",
		},
	},
	GreetingAfternoon: {
		First: []string{"こんにちは🩷"},
		Repeat: []string{
			"お疲れさま🩷",
			"今日も輝いてますね🩷",
			"午後もゆるゆるいこうね🩷",
			"いいお天気で気分上がる🩷",
			"元気にしてた🩷",
			"今日もかわいい🩷",
			"お昼はなに食べました🩷",
			"午後ものんびりしよ🩷",
			"まったりしてる🩷",
		},
	},
	GreetingEvening: {
		First: []string{"こんばんは🩷"},
		Repeat: []string{
			"今日もお疲れさま🩷",
			"1日お疲れさまでした🩷",
			"今日はどんな1日だった🩷",
			"夜も素敵ですね🩷",
			"今夜もゆるゆるいこうね🩷",
			"お疲れさまです🩷",
			"夜も会えて嬉しい🩷",
			"夜はまったりタイムですね🩷",
		},
	},
	GreetingNight: {
		First: []string{"おやすみ🩷", "おやすみなさい🩷"},
		Repeat: []string{
			"今日もお疲れさまでした🩷",
			"ゆっくり休んでね🩷",
			"また明日ね🩷",
			"素敵な夢を🩷",
			"今日もありがとう🩷",
			"おやすみです🩷",
			"明日もゆるゆるいこうね🩷",
			"ゆったり休んでください🩷",
			"のんびり夢の世界へ🩷",
		},
	},
	GreetingGoodMorning: {
		First: []string{"Good morning🩷"},
		Repeat: []string{
			"Have a wonderful day🩷",
			"Hope you have a great day🩷",
			"Wishing you a lovely morning🩷",
			"Morning sunshine🩷",
			"Have a beautiful day🩷",
		},
	},
	GreetingHello: {
		First: []string{"Hello🩷", "Hi🩷"},
		Repeat: []string{
			"How are you doing🩷",
			"Nice to see you again🩷",
			"Hope you're having a good day🩷",
			"You look great today🩷",
			"Always happy to see you🩷",
		},
	},
	GreetingGoodEvening: {
		First: []string{"Good evening🩷"},
		Repeat: []string{
			"How was your day🩷",
			"Hope you had a great day🩷",
			"Have a lovely evening🩷",
			"Evening beautiful🩷",
			"Nice to see you tonight🩷",
		},
	},
	GreetingGoodNight: {
		First: []string{"Good night🩷"},
		Repeat: []string{
			"Sweet dreams🩷",
			"Sleep well cutie🩷",
			"Rest well🩷",
			"Dream of nice things🩷",
			"See you tomorrow🩷",
		},
	},
}

// TimeOfDayGreeting buckets a local clock reading: 5-10 morning, 10-17 afternoon, 17-24 evening,
// otherwise night.
func TimeOfDayGreeting(at time.Time) GreetingType {
	hour := at.Hour()
	switch {
	case hour >= 5 && hour < 10:
		return GreetingMorning
	case hour >= 10 && hour < 17:
		return GreetingAfternoon
	case hour >= 17:
		return GreetingEvening
	default:
		return GreetingNight
	}
}

// GreetingDay is the calendar-date key greeting counters reset on.
func GreetingDay(at time.Time) string {
	return at.Format(time.DateOnly)
}
