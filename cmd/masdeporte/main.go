package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/francodavinci/masdeporte-mobile/internal/api"
	"github.com/francodavinci/masdeporte-mobile/internal/booking"
	"github.com/francodavinci/masdeporte-mobile/internal/config"
	"github.com/francodavinci/masdeporte-mobile/internal/payment"
	"github.com/francodavinci/masdeporte-mobile/internal/pkg/logger"
	"github.com/francodavinci/masdeporte-mobile/internal/reservation"
	"github.com/francodavinci/masdeporte-mobile/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	store, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	client := api.New(cfg.BaseURL, cfg.HTTPTimeout, store, logger.L())

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	args := os.Args[2:]

	switch os.Args[1] {
	case "login":
		err = cmdLogin(ctx, client, args)
	case "register":
		err = cmdRegister(ctx, client, args)
	case "logout":
		err = client.Logout(ctx)
		if err == nil {
			fmt.Println("Sesión cerrada.")
		}
	case "status":
		err = cmdStatus(client)
	case "clubs":
		err = cmdClubs(ctx, client, args)
	case "club":
		err = cmdClub(ctx, client, args)
	case "availability":
		err = cmdAvailability(ctx, client, args)
	case "appointments":
		err = cmdAppointments(ctx, client, args)
	case "cancel":
		err = cmdCancel(ctx, client, args)
	case "book":
		err = cmdBook(ctx, client, cfg, args)
	case "payment-status":
		err = cmdPaymentStatus(ctx, client, args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: masdeporte <command> [flags]

commands:
  login           -email -password
  register        -name -email -password
  logout
  status
  clubs           [-query] [-location]
  club            <slug>
  availability    -service <id> -date YYYY-MM-DD
  appointments    [-search] [-status] [-date YYYY-MM-DD]
  cancel          <id>
  book            -club <slug> -service <id> -date YYYY-MM-DD -slot HH:mm [-notes] [-coupon]
  payment-status  <payment-id>`)
}

func cmdLogin(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	result, err := client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Sesión iniciada como %s (%s)\n", *email, result.Role)
	return nil
}

func cmdRegister(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if err := client.Register(ctx, *name, *email, *password); err != nil {
		return err
	}
	fmt.Println("Registro exitoso. Ya puedes iniciar sesión.")
	return nil
}

func cmdStatus(client *api.Client) error {
	st, err := client.SessionStatus(time.Now())
	if err != nil {
		return err
	}
	if !st.Authenticated {
		fmt.Println("No hay sesión activa.")
		return nil
	}
	fmt.Printf("Sesión activa: %s (%s)\n", st.Email, st.Role)
	if !st.ExpiresAt.IsZero() {
		state := "válido"
		if st.Expired {
			state = "expirado, se renovará en la próxima llamada"
		}
		fmt.Printf("Access token: %s (vence %s)\n", state, st.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func cmdClubs(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("clubs", flag.ExitOnError)
	query := fs.String("query", "", "name filter")
	location := fs.String("location", "", "location filter")
	fs.Parse(args)

	var companies []api.Company
	var err error
	if *query != "" || *location != "" {
		companies, err = client.SearchCompanies(ctx, api.SearchParams{Query: *query, Location: *location})
	} else {
		companies, err = client.Companies(ctx)
	}
	if err != nil {
		return err
	}

	for _, c := range companies {
		fmt.Printf("%-24s %-16s %s\n", c.URLSlug, c.Category, c.Name)
	}
	fmt.Printf("%d club(es) encontrado(s)\n", len(companies))
	return nil
}

func cmdClub(ctx context.Context, client *api.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("club: falta el slug")
	}
	company, err := client.CompanyBySlug(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n%s\n", company.Name, company.Category, company.Address)
	fmt.Printf("Reservas: entre %d y %d días de anticipación\n", company.MinAdvanceDays, company.MaxAdvanceDays)
	for _, s := range company.Services {
		fmt.Printf("  [%d] %-28s %s (%d min)\n", s.ID, s.Name, reservation.FormatPriceARS(s.Price), s.DurationMinutes)
	}
	return nil
}

func cmdAvailability(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("availability", flag.ExitOnError)
	serviceID := fs.Int64("service", 0, "service id")
	dateStr := fs.String("date", "", "date YYYY-MM-DD")
	fs.Parse(args)

	date, err := time.ParseInLocation("2006-01-02", *dateStr, time.Local)
	if err != nil {
		return fmt.Errorf("fecha inválida %q: %w", *dateStr, err)
	}

	slots, err := client.Availability(ctx, *serviceID, date)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		fmt.Println("No hay horarios disponibles para esta fecha")
		return nil
	}
	for _, s := range slots {
		fmt.Println(s)
	}
	return nil
}

func cmdAppointments(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("appointments", flag.ExitOnError)
	search := fs.String("search", "", "service name filter")
	status := fs.String("status", reservation.StatusAll, "CONFIRMED, CANCELLED or all")
	date := fs.String("date", "", "date filter YYYY-MM-DD")
	fs.Parse(args)

	appointments, err := client.UserAppointments(ctx)
	if err != nil {
		return err
	}

	filtered := reservation.FilterAppointments(appointments, reservation.AppointmentFilter{
		Search: *search,
		Status: *status,
		Date:   *date,
	})
	for _, group := range reservation.GroupAppointmentsByDate(filtered) {
		fmt.Println(group.DateKey)
		for _, a := range group.Items {
			fmt.Printf("  [%d] %-28s %s %s\n", a.ID, a.ServiceName, a.StartTime, reservation.StatusLabel(a.Status))
		}
	}
	if len(filtered) == 0 {
		fmt.Println("No tienes turnos que coincidan con el filtro.")
	}
	return nil
}

func cmdCancel(ctx context.Context, client *api.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("cancel: falta el id del turno")
	}
	var id int64
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		return fmt.Errorf("id inválido %q", args[0])
	}
	if err := client.CancelAppointment(ctx, id); err != nil {
		return err
	}
	fmt.Println("Turno cancelado correctamente")
	return nil
}

func cmdPaymentStatus(ctx context.Context, client *api.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("payment-status: falta el id de pago")
	}
	state, err := client.PaymentStatus(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Estado del pago %s: %s\n", args[0], state.Status)
	return nil
}

func cmdBook(ctx context.Context, client *api.Client, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	slug := fs.String("club", "", "club slug")
	serviceID := fs.Int64("service", 0, "service id")
	dateStr := fs.String("date", "", "date YYYY-MM-DD")
	slot := fs.String("slot", "", "time slot HH:mm")
	notes := fs.String("notes", "", "additional notes")
	coupon := fs.String("coupon", "", "coupon code")
	fs.Parse(args)

	authenticated, err := client.CheckAuth()
	if err != nil {
		return err
	}
	if !authenticated {
		return fmt.Errorf("debes iniciar sesión para reservar un turno")
	}

	company, err := client.CompanyBySlug(ctx, *slug)
	if err != nil {
		return err
	}
	var service *api.Service
	for i := range company.Services {
		if company.Services[i].ID == *serviceID {
			service = &company.Services[i]
			break
		}
	}
	if service == nil {
		return fmt.Errorf("el club %s no ofrece el servicio %d", *slug, *serviceID)
	}

	date, err := time.ParseInLocation("2006-01-02", *dateStr, time.Local)
	if err != nil {
		return fmt.Errorf("fecha inválida %q: %w", *dateStr, err)
	}
	policy := booking.Policy{MinAdvanceDays: company.MinAdvanceDays, MaxAdvanceDays: company.MaxAdvanceDays}
	if v := booking.ValidateDate(date, policy, time.Now()); !v.Valid {
		return fmt.Errorf("%s", v.Message)
	}

	slots, err := client.Availability(ctx, service.ID, date)
	if err != nil {
		return err
	}
	wanted := booking.FormatSlot(*slot)
	available := false
	for _, s := range slots {
		if s == wanted {
			available = true
			break
		}
	}
	if !available {
		return fmt.Errorf("el horario %s no está disponible", wanted)
	}

	profile, err := client.Store().Profile()
	if err != nil {
		return err
	}

	flow := reservation.New(*service, company.ID, date, wanted)
	flow.Notes = *notes
	if *coupon != "" {
		result, err := flow.ApplyCoupon(ctx, client, *coupon, profile.Email)
		if err != nil {
			return err
		}
		fmt.Printf("Cupón %s aplicado: -%s\n", result.Coupon.Code, reservation.FormatPriceARS(result.DiscountAmount))
	}

	breakdown, err := flow.Breakdown()
	if err != nil {
		return err
	}
	fmt.Printf("Precio original: %s\n", reservation.FormatPriceARS(breakdown.OriginalAmount))
	if breakdown.DiscountAmount > 0 {
		fmt.Printf("Descuento:       -%s\n", reservation.FormatPriceARS(breakdown.DiscountAmount))
		fmt.Printf("Con descuento:   %s\n", reservation.FormatPriceARS(breakdown.DiscountedAmount))
	}
	fmt.Printf("Seña a pagar:    %s\n", reservation.FormatPriceARS(breakdown.DepositAmount))
	fmt.Printf("Saldo restante:  %s\n", reservation.FormatPriceARS(breakdown.RemainingAmount))

	listener := payment.NewListener(cfg.CallbackAddr, logger.L())
	listener.Start()
	defer listener.Shutdown(context.Background())

	pref, err := flow.BuildPreference(
		api.Payer{Email: profile.Email, Name: profile.Name, Surname: profile.Surname},
		profile.UserID,
		reservation.ListenerBackURLs(listener.URL()),
		cfg.BaseURL,
		time.Now(),
	)
	if err != nil {
		return err
	}

	initPoint, err := flow.Checkout(ctx, client, pref)
	if err != nil {
		return err
	}
	fmt.Printf("\nAbre este enlace para pagar la seña:\n%s\n\nEsperando el pago...\n", initPoint)

	waitCtx, cancel := context.WithTimeout(ctx, payment.WaitTimeout)
	defer cancel()
	result, err := listener.Wait(waitCtx)
	if err != nil {
		return fmt.Errorf("no se recibió la confirmación del pago: %w", err)
	}

	if !payment.IsApproved(result.Status) {
		return fmt.Errorf("el pago terminó en estado %q", result.Status)
	}

	// Re-check with the backend when we have a payment id; the redirect
	// status wins if verification fails.
	if result.PaymentID != "" {
		if state, err := client.PaymentStatus(ctx, result.PaymentID); err == nil {
			fmt.Printf("Estado verificado del pago: %s\n", state.Status)
		}
		err = client.ConfirmAppointment(ctx, api.ConfirmPaymentRequest{
			PaymentID:         result.PaymentID,
			Status:            result.Status,
			PreferenceID:      result.PreferenceID,
			ExternalReference: result.ExternalReference,
		})
		if err != nil {
			return err
		}
	}

	fmt.Println("¡Turno reservado exitosamente!")
	return nil
}
