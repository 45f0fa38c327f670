package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"hotel/dto"
	"hotel/services/logger"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/text/unicode/norm"
)

const (
	// ngưỡng tương đồng để sửa lỗi chính tả một từ
	similarityThreshold = 0.75
	minCorrectableLen   = 4
)

const (
	replyAllBooked = "Unfortunately, all rooms are currently booked. Please check back later for availability or contact us for assistance."
	replyBooking   = "You can book a room by navigating to our booking page. We offer Standard Rooms ($100/night), Deluxe Rooms ($150/night), and Suites ($250/night). Would you like me to redirect you to the booking page?"
	replyCheckIn   = "Check-in time is from 2:00 PM onwards. Check-out time is 11:00 AM. Early check-in and late check-out can be arranged based on availability."
	replyCheckOut  = "Check-out time is 11:00 AM. Late check-out can be arranged based on availability. Please contact our front desk for arrangements."
	replyCancel    = "You can cancel your booking from your customer dashboard. Cancellations must be made at least 24 hours before check-in. You will need to be logged in to manage your bookings."
	replyPrice     = "Our room rates are: Standard Room - $100/night, Deluxe Room - $150/night, and Suite - $250/night. All rates are subject to availability and may vary during peak seasons."
	replyAmenities = "Our rooms include WiFi, TV, AC, and private bathrooms. Deluxe rooms also feature mini bars and city views, while suites include balconies and room service."
	replyHelp      = "For any assistance, you can contact our support team at support@hotel.com or call us at +1-555-0123. Our staff is available 24/7 to help you."
	replyGreeting  = "Hello! I'm your hotel assistant. I can help you with booking rooms, checking availability, room rates, amenities, and more. How can I assist you today?"
	replyThanks    = "You're welcome! Is there anything else I can help you with?"
	replyGoodbye   = "Thank you for choosing our hotel! Have a wonderful day and feel free to reach out if you need anything else."
	replyFallback  = "I'm sorry, I didn't understand that. You can ask me about room availability, booking, check-in/check-out times, prices, amenities, or cancellation policies. How can I help you?"
)

// RoomCounter cung cấp số phòng trống cho câu trả lời về tình trạng phòng
type RoomCounter interface {
	Counts(ctx context.Context) (dto.RoomCounts, error)
}

type chatRule struct {
	keywords []string
	reply    func(ctx context.Context) (string, error)
}

// ChatbotService trả lời theo từ khóa, luật đầu tiên khớp sẽ thắng
type ChatbotService struct {
	rooms   RoomCounter
	logger  logger.Logger
	rules   []chatRule
	vocab   []string
	matcher *closestmatch.ClosestMatch
}

type ChatbotServiceOptions struct {
	Rooms  RoomCounter
	Logger logger.Logger
}

func NewChatbotService(opts ChatbotServiceOptions) *ChatbotService {
	s := &ChatbotService{
		rooms:  opts.Rooms,
		logger: opts.Logger,
	}
	s.rules = []chatRule{
		{keywords: []string{"available", "rooms", "how many"}, reply: s.availabilityReply},
		{keywords: []string{"book", "booking"}, reply: static(replyBooking)},
		{keywords: []string{"check-in", "checkin"}, reply: static(replyCheckIn)},
		{keywords: []string{"check-out", "checkout"}, reply: static(replyCheckOut)},
		{keywords: []string{"cancel", "cancellation"}, reply: static(replyCancel)},
		{keywords: []string{"price", "cost", "rate"}, reply: static(replyPrice)},
		{keywords: []string{"amenities", "facilities"}, reply: static(replyAmenities)},
		{keywords: []string{"help", "support"}, reply: static(replyHelp)},
		{keywords: []string{"hello", "hi", "hey"}, reply: static(replyGreeting)},
		{keywords: []string{"thank"}, reply: static(replyThanks)},
		{keywords: []string{"bye", "goodbye"}, reply: static(replyGoodbye)},
	}

	seen := make(map[string]bool)
	for _, rule := range s.rules {
		for _, kw := range rule.keywords {
			if len(kw) >= minCorrectableLen && !strings.ContainsAny(kw, " -") && !seen[kw] {
				seen[kw] = true
				s.vocab = append(s.vocab, kw)
			}
		}
	}
	s.matcher = closestmatch.New(s.vocab, []int{2, 3})
	return s
}

// Reply trả lời một tin nhắn. Nếu không luật nào khớp, thử sửa lỗi chính tả từng từ rồi khớp lại.
func (s *ChatbotService) Reply(ctx context.Context, message string) (string, error) {
	normalized := normalizeInput(message)

	if rule, ok := s.match(normalized); ok {
		return rule.reply(ctx)
	}

	corrected := s.correct(normalized)
	if corrected != normalized {
		s.logger.Debug("Chatbot corrected %q to %q", normalized, corrected)
		if rule, ok := s.match(corrected); ok {
			return rule.reply(ctx)
		}
	}
	return replyFallback, nil
}

func (s *ChatbotService) match(message string) (chatRule, bool) {
	for _, rule := range s.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(message, kw) {
				return rule, true
			}
		}
	}
	return chatRule{}, false
}

// correct thay từng từ bằng từ khóa gần nhất nếu đủ giống
func (s *ChatbotService) correct(message string) string {
	words := strings.FieldsFunc(message, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	for i, word := range words {
		if len(word) < minCorrectableLen {
			continue
		}
		if best, ok := s.closestKeyword(word); ok {
			words[i] = best
		}
	}
	return strings.Join(words, " ")
}

func (s *ChatbotService) closestKeyword(word string) (string, bool) {
	if candidate := s.matcher.Closest(word); candidate != "" && calculateSimilarity(word, candidate) >= similarityThreshold {
		return candidate, true
	}
	best, bestScore := "", 0.0
	for _, kw := range s.vocab {
		if score := calculateSimilarity(word, kw); score > bestScore {
			best, bestScore = kw, score
		}
	}
	return best, bestScore >= similarityThreshold
}

func (s *ChatbotService) availabilityReply(ctx context.Context) (string, error) {
	counts, err := s.rooms.Counts(ctx)
	if err != nil {
		return "", err
	}
	if counts.Available == 0 {
		return replyAllBooked, nil
	}
	return fmt.Sprintf("We currently have %d rooms available out of %d total rooms. You can view and book available rooms on our booking page. Would you like me to help you with anything else?",
		counts.Available, counts.Total), nil
}

func static(reply string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return reply, nil }
}

// Hàm chuẩn hóa chuỗi: bỏ dấu, chuyển ASCII, viết thường
func normalizeInput(input string) string {
	input = strings.TrimSpace(removeDiacritics(input))
	return strings.ToLower(unidecode.Unidecode(input))
}

// Bỏ dấu viết thường
func removeDiacritics(s string) string {
	t := norm.NFD.String(s)
	var b strings.Builder
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}
