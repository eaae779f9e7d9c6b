package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"evroute/internal"
)

// Assistant answers free-text questions for chat users.
type Assistant interface {
	Reply(ctx context.Context, message string) (string, bool)
}

type subscription struct {
	UserID int
	User   string
}

// Bot is the Telegram chat surface: subscribers get service notices, and any
// non-command message is forwarded to the assistant.
type Bot struct {
	api           *tgbotapi.BotAPI
	assistant     Assistant
	database      internal.Database
	mu            sync.Mutex
	subscriptions map[int]subscription
	event         chan MessageContent
	send          chan MessageContent
}

type MessageContent struct {
	ChatID int64
	Text   string
}

func NewBot(apiKey string) (*Bot, error) {
	bot := &Bot{
		subscriptions: make(map[int]subscription),
		event:         make(chan MessageContent, 100),
		send:          make(chan MessageContent, 100),
	}
	api, err := tgbotapi.NewBotAPI(apiKey)
	if err != nil {
		return nil, err
	}
	bot.api = api
	return bot, nil
}

func (b *Bot) SetAssistant(assistant Assistant) {
	b.assistant = assistant
}

// SetDatabase attaches the log sink, used for the /status report.
func (b *Bot) SetDatabase(database internal.Database) {
	b.database = database
}

func (b *Bot) Start() {
	go b.sendPump()
	go b.eventPump()
	go b.updatesPump()
}

// Notify broadcasts a service notice to all subscribers.
func (b *Bot) Notify(text string) {
	b.event <- MessageContent{Text: text}
}

func (b *Bot) subscribe(userID int, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[userID] = subscription{UserID: userID, User: name}
}

func (b *Bot) unsubscribe(userID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscriptions, userID)
}

func (b *Bot) subscribers() []subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := make([]subscription, 0, len(b.subscriptions))
	for _, sub := range b.subscriptions {
		subs = append(subs, sub)
	}
	return subs
}

func (b *Bot) updatesPump() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		log.Printf("bot: error getting updates: %v", err)
		return
	}
	for update := range updates {
		if update.Message == nil {
			continue
		}
		if !update.Message.IsCommand() {
			b.answerQuestion(update.Message.Chat.ID, update.Message.Text)
			continue
		}
		switch update.Message.Command() {
		case "start":
			b.subscribe(update.Message.From.ID, update.Message.From.UserName)
			msg := fmt.Sprintf("Hello *%v*, you are now subscribed to service notices\\. Ask me anything about charging stations\\.", update.Message.From.UserName)
			b.send <- MessageContent{ChatID: update.Message.Chat.ID, Text: msg}
		case "stop":
			b.unsubscribe(update.Message.From.ID)
			b.send <- MessageContent{ChatID: update.Message.Chat.ID, Text: "Your subscription has been removed"}
		case "status":
			msg := b.composeStatusMessage()
			b.send <- MessageContent{ChatID: update.Message.Chat.ID, Text: msg}
		}
	}
}

// answerQuestion forwards free text to the assistant.
func (b *Bot) answerQuestion(chatID int64, text string) {
	if b.assistant == nil || strings.TrimSpace(text) == "" {
		return
	}
	reply, fallback := b.assistant.Reply(context.Background(), text)
	if fallback {
		reply += "\n(answered from the local fallback)"
	}
	b.send <- MessageContent{ChatID: chatID, Text: sanitize(reply)}
}

// eventPump fans notices out to all subscribers
func (b *Bot) eventPump() {
	for event := range b.event {
		b.broadcast(event.Text)
	}
}

func (b *Bot) broadcast(text string) {
	for _, sub := range b.subscribers() {
		b.send <- MessageContent{ChatID: int64(sub.UserID), Text: sanitize(text)}
	}
}

// sendPump sends direct messages to users
func (b *Bot) sendPump() {
	for {
		if event, ok := <-b.send; ok {
			b.sendMessage(event.ChatID, event.Text)
		}
	}
}

// sendMessage common routine to send a message via bot API
func (b *Bot) sendMessage(id int64, text string) {
	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = "MarkdownV2"
	_, err := b.api.Send(msg)
	if err != nil {
		// maybe error was while parsing, so we can send a message about this error
		msg = tgbotapi.NewMessage(id, fmt.Sprintf("Error: %v", err))
		_, err = b.api.Send(msg)
		if err != nil {
			log.Printf("bot: error sending message: %v", err)
		}
	}
}

// compose status message from the recent service log
func (b *Bot) composeStatusMessage() string {
	msg := "Status info:\n\n"
	if b.database != nil {
		records, err := b.database.ReadLog(5)
		if err != nil {
			log.Printf("bot: error reading log: %v", err)
			msg += fmt.Sprintf("Error reading log:\n `%v`", err)
		} else {
			for _, r := range records {
				msg += fmt.Sprintf("*%v*: `%v`\n", sanitize(r.Feature), sanitize(r.Time))
				msg += fmt.Sprintf("`%v`\n\n", sanitize(r.Text))
			}
		}
	}
	msg += fmt.Sprintf("Active subscriptions: %v", len(b.subscribers()))
	return msg
}

func sanitize(input string) string {
	// Define a list of reserved characters that need to be escaped
	reservedChars := "\\`*_{}[]()#+-.!|"

	sanitized := ""
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			sanitized += "\\" + string(char)
		} else {
			sanitized += string(char)
		}
	}
	return sanitized
}
