package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/MatiasdeBuren/consorcio-console/internal/analytics"
	"github.com/MatiasdeBuren/consorcio-console/internal/api"
	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
	"github.com/MatiasdeBuren/consorcio-console/internal/config"
	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
	"github.com/MatiasdeBuren/consorcio-console/internal/logging"
	"github.com/MatiasdeBuren/consorcio-console/internal/manager"
	"github.com/MatiasdeBuren/consorcio-console/internal/notify"
	"github.com/MatiasdeBuren/consorcio-console/internal/poller"
	"github.com/MatiasdeBuren/consorcio-console/internal/session"
)

const usage = `Uso: consorcio-console <comando> [opciones]

Comandos:
  login --token <jwt>     Guarda el token de sesión
  logout                  Borra la sesión guardada
  stats                   Resumen general del consorcio
  users [--search]        Lista de usuarios
  apartments [--search]   Lista de departamentos
  amenities [--search]    Lista de amenities
  reservations [--pending] Lista de reservas
  watch                   Avisa cuando entran reservas pendientes
  expenses [--summary]    Expensas del residente
  timeline --amenity <id> Ocupación del día por carriles
`

func main() {
	logging.InitLogger(config.AppName)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.LoadConfig()
	store := session.NewStore(cfg.SessionFile)
	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	toasts := notify.NewCenter(4 * time.Second)
	defer toasts.Close()

	ctx := context.Background()
	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "login":
		err = runLogin(store, args)
	case "logout":
		err = store.Clear()
	case "stats":
		err = withToken(store, func(token string) error {
			return runStats(ctx, client, token)
		})
	case "users":
		err = withToken(store, func(token string) error {
			return runUsers(ctx, client, toasts, token, args)
		})
	case "apartments":
		err = withToken(store, func(token string) error {
			return runApartments(ctx, client, toasts, token, args)
		})
	case "amenities":
		err = withToken(store, func(token string) error {
			return runAmenities(ctx, client, toasts, token, args)
		})
	case "reservations":
		err = withToken(store, func(token string) error {
			return runReservations(ctx, client, token, args)
		})
	case "watch":
		err = withToken(store, func(token string) error {
			return runWatch(ctx, cfg, client, token)
		})
	case "expenses":
		err = withToken(store, func(token string) error {
			return runExpenses(ctx, client, token, args)
		})
	case "timeline":
		err = withToken(store, func(token string) error {
			return runTimeline(ctx, client, token, args)
		})
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	for _, toast := range toasts.Active() {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", toast.Level, toast.Message)
	}

	if err != nil {
		var apiErr *apierr.APIError
		if errors.As(err, &apiErr) && apiErr.Code == apierr.CodeUnauthorized {
			store.HandleUnauthorized()
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// withToken resolves the stored session token, refusing to dispatch with an
// expired one.
func withToken(store *session.Store, fn func(token string) error) error {
	token, err := store.Token()
	if err != nil {
		return fmt.Errorf("no hay sesión activa, use 'login' primero")
	}
	if session.IsTokenExpired(token) {
		store.HandleUnauthorized()
		return fmt.Errorf("la sesión expiró, inicie sesión nuevamente")
	}
	return fn(token)
}

func runLogin(store *session.Store, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	token := fs.String("token", "", "JWT emitido por el backend")
	_ = fs.Parse(args)

	if *token == "" {
		return fmt.Errorf("falta --token")
	}
	if session.IsTokenExpired(*token) {
		return fmt.Errorf("el token ya está vencido")
	}
	if err := store.SaveToken(*token); err != nil {
		return err
	}
	fmt.Println("Sesión guardada.")
	return nil
}

func runStats(ctx context.Context, client *api.Client, token string) error {
	stats, err := client.AdminStats(ctx, token)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Usuarios\t%d\n", stats.TotalUsers)
	fmt.Fprintf(w, "Departamentos\t%d\n", stats.TotalApartments)
	fmt.Fprintf(w, "Amenities\t%d\n", stats.TotalAmenities)
	fmt.Fprintf(w, "Reservas pendientes\t%d\n", stats.PendingReservations)
	fmt.Fprintf(w, "Expensas impagas\t%d\n", stats.UnpaidExpenses)
	return w.Flush()
}

func runUsers(ctx context.Context, client *api.Client, toasts notify.Notifier, token string, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	search := fs.String("search", "", "filtro por nombre o email")
	_ = fs.Parse(args)

	m := manager.New(manager.Config[dtos.User, dtos.UserRoleDraft]{
		Label: "Usuario",
		Ops: manager.Ops[dtos.User, dtos.UserRoleDraft]{
			Load: client.ListUsers,
			Update: func(ctx context.Context, token string, id int, draft dtos.UserRoleDraft) (dtos.User, error) {
				return client.UpdateUserRole(ctx, token, id, draft)
			},
		},
		SearchFields: func(u dtos.User) []string { return []string{u.Name, u.Email} },
		Notifier:     toasts,
	})
	if err := m.Open(ctx, token); err != nil {
		return err
	}
	defer m.Close()
	m.SetSearch(*search)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tROL")
	for _, u := range m.DisplayedItems() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
	}
	return w.Flush()
}

func runApartments(ctx context.Context, client *api.Client, toasts notify.Notifier, token string, args []string) error {
	fs := flag.NewFlagSet("apartments", flag.ExitOnError)
	search := fs.String("search", "", "filtro por número o propietario")
	_ = fs.Parse(args)

	m := manager.New(manager.Config[dtos.Apartment, dtos.ApartmentDraft]{
		Label: "Departamento",
		Ops: manager.Ops[dtos.Apartment, dtos.ApartmentDraft]{
			Load:   client.ListApartments,
			Create: client.CreateApartment,
			Update: client.UpdateApartment,
			Delete: client.DeleteApartment,
		},
		SearchFields: func(a dtos.Apartment) []string { return []string{a.Number, a.OwnerName} },
		Notifier:     toasts,
	})
	if err := m.Open(ctx, token); err != nil {
		return err
	}
	defer m.Close()
	m.SetSearch(*search)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNÚMERO\tPISO\tPROPIETARIO\tRESIDENTES")
	for _, a := range m.DisplayedItems() {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%d\n", a.ID, a.Number, a.Floor, a.OwnerName, a.ResidentCount)
	}
	return w.Flush()
}

func runAmenities(ctx context.Context, client *api.Client, toasts notify.Notifier, token string, args []string) error {
	fs := flag.NewFlagSet("amenities", flag.ExitOnError)
	search := fs.String("search", "", "filtro por nombre o descripción")
	_ = fs.Parse(args)

	m := manager.New(manager.Config[dtos.Amenity, dtos.AmenityDraft]{
		Label: "Amenity",
		Ops: manager.Ops[dtos.Amenity, dtos.AmenityDraft]{
			Load:   client.ListAmenities,
			Create: client.CreateAmenity,
			Update: client.UpdateAmenity,
			Delete: client.DeleteAmenity,
		},
		SearchFields: func(a dtos.Amenity) []string { return []string{a.Name, a.Description} },
		Notifier:     toasts,
	})
	if err := m.Open(ctx, token); err != nil {
		return err
	}
	defer m.Close()
	m.SetSearch(*search)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tCAPACIDAD\tHORARIO\tRESERVAS ACTIVAS")
	for _, a := range m.DisplayedItems() {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s-%s\t%d\n", a.ID, a.Name, a.Capacity, a.OpensAt, a.ClosesAt, a.ActiveReservations)
	}
	return w.Flush()
}

func runReservations(ctx context.Context, client *api.Client, token string, args []string) error {
	fs := flag.NewFlagSet("reservations", flag.ExitOnError)
	pending := fs.Bool("pending", false, "solo reservas pendientes de aprobación")
	_ = fs.Parse(args)

	var reservations []dtos.Reservation
	var err error
	if *pending {
		reservations, err = client.ListPendingReservations(ctx, token)
	} else {
		reservations, err = client.ListReservations(ctx, token)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAMENITY\tUSUARIO\tINICIO\tFIN\tESTADO")
	for _, r := range reservations {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.AmenityName, r.UserName,
			r.StartsAt.Format("2006-01-02 15:04"),
			r.EndsAt.Format("15:04"),
			r.Status)
	}
	return w.Flush()
}

// runWatch polls the pending-reservation count until interrupted, printing a
// line whenever the badge grows.
func runWatch(ctx context.Context, cfg *config.Config, client *api.Client, token string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	printer := notify.NotifierFunc(func(level notify.Level, message string) {
		fmt.Printf("[%s] %s\n", level, message)
	})
	p := poller.New(cfg.PendingPollCron, func(ctx context.Context) (int, error) {
		pending, err := client.ListPendingReservations(ctx, token)
		if err != nil {
			return 0, err
		}
		return len(pending), nil
	}, printer)

	if err := p.Start(ctx); err != nil {
		return err
	}
	fmt.Println("Observando reservas pendientes (Ctrl+C para salir)...")
	<-ctx.Done()
	p.Stop()
	return nil
}

func runExpenses(ctx context.Context, client *api.Client, token string, args []string) error {
	fs := flag.NewFlagSet("expenses", flag.ExitOnError)
	summary := fs.Bool("summary", false, "mostrar solo el resumen")
	_ = fs.Parse(args)

	if *summary {
		s, err := client.MyExpensesSummary(ctx, token)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Total\t$%.2f\n", s.Total)
		fmt.Fprintf(w, "Pagado\t$%.2f\n", s.Paid)
		fmt.Fprintf(w, "Pendiente\t$%.2f\n", s.Pending)
		fmt.Fprintf(w, "Vencido\t$%.2f\n", s.Overdue)
		return w.Flush()
	}

	expenses, err := client.MyExpenses(ctx, token)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPERÍODO\tMONTO\tPAGADO\tVENCIMIENTO")
	for _, e := range expenses {
		fmt.Fprintf(w, "%d\t%s\t$%.2f\t$%.2f\t%s\n",
			e.ID, e.Period, e.Amount, e.PaidAmount, e.DueDate.Format("2006-01-02"))
	}
	return w.Flush()
}

func runTimeline(ctx context.Context, client *api.Client, token string, args []string) error {
	fs := flag.NewFlagSet("timeline", flag.ExitOnError)
	amenityID := fs.Int("amenity", 0, "id del amenity")
	_ = fs.Parse(args)

	if *amenityID <= 0 {
		return fmt.Errorf("falta --amenity")
	}
	reservations, err := client.AmenityReservations(ctx, token, *amenityID)
	if err != nil {
		return err
	}

	segments := analytics.AssignLanes(analytics.SegmentsFromReservations(reservations))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CARRIL\tINICIO\tFIN\tRESERVAS")
	for _, seg := range segments {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n",
			seg.Lane, seg.Start.Format("15:04"), seg.End.Format("15:04"), seg.Count)
	}
	return w.Flush()
}
