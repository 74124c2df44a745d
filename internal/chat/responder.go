// Package chat implements the floating chat widget: a conversation log and
// the responders that produce the assistant's replies.
package chat

import (
	"context"
	"strings"
)

// Responder produces the assistant's reply to a single user message.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Greeting is the first assistant message of every conversation.
const Greeting = "Ciao! 👋 Sono l'assistente virtuale di Mattia. Come posso aiutarti?"

// rule maps any of its keywords (matched as lowercase substrings) to a reply.
type rule struct {
	topic    string
	keywords []string
	reply    string
}

// Rules are checked in order and the first match wins, so "ciao, vorrei
// una consulenza" is answered as a consulting request.
var rules = []rule{
	{
		topic:    "contact",
		keywords: []string{"contatt", "email", "chiamat"},
		reply:    "Puoi prenotare una chiamata con Mattia tramite la sezione 'Ask Me Anything' oppure scrivergli direttamente a mattia@example.com 📧",
	},
	{
		topic:    "consulting",
		keywords: []string{"consulenz", "collabor", "lavor"},
		reply:    "Mattia offre consulenze strategiche, brainstorming sessions e mentorship per PM. Vuoi saperne di più su una di queste opzioni? 💼",
	},
	{
		topic:    "experience",
		keywords: []string{"esperienz", "percors", "cv"},
		reply:    "Mattia ha un percorso unico: da designer a developer fino a Product Manager. Ha lavorato dal 2012 ad oggi in vari ruoli. Vuoi esplorare la timeline completa? 🚀",
	},
	{
		topic:    "blog",
		keywords: []string{"blog", "articol", "legg"},
		reply:    "Nel blog trovi articoli su Product Management, Design Systems e molto altro. Dai un'occhiata alla sezione Blog! 📚",
	},
	{
		topic:    "greeting",
		keywords: []string{"ciao", "hello", "hi"},
		reply:    "Ciao! Come posso esserti utile oggi? Posso aiutarti con info su consulenze, il percorso di Mattia o come contattarlo! 😊",
	},
}

const fallbackReply = "Interessante domanda! Per informazioni dettagliate, ti consiglio di esplorare il sito o prenotare una chiamata con Mattia. Cosa ti interessa di più? 🤔"

// CannedResponder answers from a fixed keyword table. It never fails.
type CannedResponder struct{}

// NewCannedResponder returns the keyword-table responder.
func NewCannedResponder() *CannedResponder {
	return &CannedResponder{}
}

// Reply implements Responder.
func (CannedResponder) Reply(_ context.Context, message string) (string, error) {
	reply, _ := Classify(message)
	return reply, nil
}

// Classify returns the canned reply for message and the topic that produced
// it ("default" when no keyword matched).
func Classify(message string) (reply, topic string) {
	input := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(input, kw) {
				return r.reply, r.topic
			}
		}
	}
	return fallbackReply, "default"
}
