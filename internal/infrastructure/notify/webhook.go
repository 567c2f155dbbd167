// Package notify entrega los eventos del motor a un webhook de chat
// (tarjetas tipo Teams). La entrega es fire-and-forget: corre en una
// goroutine después del commit y un fallo solo se registra en el log,
// nunca afecta la transición de estado ya confirmada.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jhortiz/bodega-scan-api/internal/application/binding"
	"github.com/jhortiz/bodega-scan-api/pkg/config"
	"github.com/jhortiz/bodega-scan-api/pkg/logger"
)

var _ binding.Notifier = (*WebhookNotifier)(nil)

// WebhookNotifier implementa binding.Notifier contra un webhook HTTP.
// Se construye con configuración explícita; no lee estado global.
type WebhookNotifier struct {
	url    string
	client *http.Client
	log    *logger.Logger
}

// New construye el notificador. Usa net/http directamente, igual que los
// clientes salientes del resto del sistema.
func New(cfg config.NotifyConfig, log *logger.Logger) *WebhookNotifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		url:    cfg.WebhookURL,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// card payload estilo MessageCard: título + lista de hechos.
type card struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Facts []fact `json:"facts"`
}

type fact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OnBound notifica la vinculación de una caja a una ubicación.
func (n *WebhookNotifier) OnBound(ev binding.Event) {
	n.post(card{
		Title: "Caja ubicada",
		Text:  fmt.Sprintf("Caja %s vinculada a %s", ev.ContainerCode, ev.SlotCode),
		Facts: baseFacts(ev, fact{Name: "Ubicación", Value: ev.SlotCode}),
	})
}

// OnOutbound notifica la salida de una caja a proceso o despacho.
func (n *WebhookNotifier) OnOutbound(ev binding.Event) {
	n.post(card{
		Title: "Caja en salida",
		Text:  fmt.Sprintf("Caja %s enviada a %s", ev.ContainerCode, ev.Area),
		Facts: baseFacts(ev, fact{Name: "Área", Value: ev.Area}),
	})
}

// OnReturned notifica el retorno de una caja a stock.
func (n *WebhookNotifier) OnReturned(ev binding.Event) {
	n.post(card{
		Title: "Caja retornada a stock",
		Text:  fmt.Sprintf("Caja %s retornada a %s", ev.ContainerCode, ev.SlotCode),
		Facts: baseFacts(ev, fact{Name: "Ubicación", Value: ev.SlotCode}),
	})
}

func baseFacts(ev binding.Event, extra ...fact) []fact {
	facts := []fact{
		{Name: "Artículo", Value: ev.ItemCode},
		{Name: "N° caja", Value: ev.BoxNumber},
		{Name: "Operario", Value: ev.OperatorID},
		{Name: "Fecha", Value: ev.At.Format(time.RFC3339)},
	}
	if ev.ItemName != "" {
		facts = append([]fact{{Name: "Nombre", Value: ev.ItemName}}, facts...)
	}
	return append(facts, extra...)
}

func (n *WebhookNotifier) post(c card) {
	if n.url == "" {
		return
	}
	go func() {
		body, err := json.Marshal(c)
		if err != nil {
			n.log.Error().Err(err).Msg("notify: serializar tarjeta")
			return
		}
		resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
		if err != nil {
			n.log.Warn().Err(err).Str("title", c.Title).Msg("notify: entrega fallida")
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			n.log.Warn().Int("status", resp.StatusCode).Str("title", c.Title).Msg("notify: webhook rechazó el mensaje")
		}
	}()
}
