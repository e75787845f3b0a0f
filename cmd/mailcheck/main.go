// Command mailcheck lists the mail providers, configures the selected one
// and sends the test message.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/quejasboyaca/complaint-service/internal/config"
	"github.com/quejasboyaca/complaint-service/internal/logger"
	"github.com/quejasboyaca/complaint-service/internal/notification"
)

func main() {
	to := flag.String("to", "", "recipient of the test message")
	provider := flag.String("provider", "", "provider name (defaults to EMAIL_PROVIDER)")
	send := flag.Bool("send", true, "send the test message after configuring")
	flag.Parse()

	mc, err := config.LoadMail()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(os.Getenv("LOG_LEVEL"), true)

	fmt.Println("Proveedores soportados:", strings.Join(notification.SupportedProviders(), ", "))

	selected := *provider
	if selected == "" {
		selected = mc.Provider
	}
	if !notification.IsProviderSupported(selected) {
		fmt.Fprintf(os.Stderr, "Proveedor de email no soportado: %s\n", selected)
		os.Exit(1)
	}

	factory := notification.NewFactory(mc.Provider, notification.Credentials{
		User:     mc.User,
		Password: mc.Password,
	}, log)
	svc, err := factory.Configure(selected)
	if err != nil {
		os.Exit(1)
	}
	if !*send {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	d, err := svc.SendTestEmail(ctx, *to)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error enviando correo de prueba:", err)
		os.Exit(1)
	}
	fmt.Printf("Correo enviado (%s) id=%s a %s\n", d.Provider, d.MessageID, strings.Join(d.Recipients, ", "))
}
