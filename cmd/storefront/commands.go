package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/admin"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/catalog"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/checkout"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"go.uber.org/zap"
)

var errUsage = errors.New(`usage: storefront <command>

commands:
  products [-q text] [-category c] [-sort order] [-featured]
  show <id|slug>
  cart list | add | remove | set | clear
  checkout -name -email -address -city -country -zip
  login <username> <password>
  logout
  admin create | update | delete`)

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "products":
		return a.products(ctx, rest)
	case "show":
		return a.show(ctx, rest)
	case "cart":
		return a.cartCmd(ctx, rest)
	case "checkout":
		return a.checkout(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout()
	case "admin":
		return a.adminCmd(ctx, rest)
	}
	return errUsage
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := a.flags("products")
	q := fs.String("q", "", "search product names")
	category := fs.String("category", "", "filter by category")
	sort := fs.String("sort", "", "price_asc, price_desc, name_asc or name_desc")
	featured := fs.Bool("featured", false, "featured products only")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.catalog.Load(ctx)
	products := a.catalog.List()
	if *featured {
		products = catalog.Featured(products)
	}
	products = catalog.Filter(products, domain.ListQuery{
		Q:        *q,
		Category: *category,
		Sort:     domain.ParseSortOrder(*sort),
	})

	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products found.")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, checkout.FormatPrice(p.Price))
	}
	return w.Flush()
}

func (a *app) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: storefront show <id|slug>")
	}
	a.catalog.Load(ctx)

	p, ok := a.catalog.GetBySlug(args[0])
	if !ok {
		if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
			p, ok = a.catalog.GetByID(id)
		}
	}
	if !ok {
		return domain.ErrProductNotFound
	}

	fmt.Fprintf(a.out, "%s (%s)\n", p.Name, p.Slug)
	fmt.Fprintf(a.out, "%s  %s\n", checkout.FormatPrice(p.Price), p.Category)
	fmt.Fprintln(a.out, p.Description)
	if len(p.Colors) > 0 {
		fmt.Fprintf(a.out, "Colors: %s\n", strings.Join(p.Colors, ", "))
	}
	if len(p.Sizes) > 0 {
		fmt.Fprintf(a.out, "Sizes: %s\n", strings.Join(p.Sizes, ", "))
	}
	return nil
}

func (a *app) cartCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: storefront cart list|add|remove|set|clear")
	}
	sub, rest := args[0], args[1:]

	fs := a.flags("cart " + sub)
	id := fs.Int64("id", 0, "product id")
	qty := fs.Int("qty", 1, "quantity")
	size := fs.String("size", "", "size")
	color := fs.String("color", "", "color")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	variant := domain.Variant{Size: domain.Opt(*size), Color: domain.Opt(*color)}

	switch sub {
	case "list":
		a.catalog.Load(ctx)
		return a.printCart()

	case "add":
		a.catalog.Load(ctx)
		p, ok := a.catalog.GetByID(*id)
		if !ok {
			return domain.ErrProductNotFound
		}
		if err := checkOption("size", variant.Size, p.Sizes); err != nil {
			return err
		}
		if err := checkOption("color", variant.Color, p.Colors); err != nil {
			return err
		}
		if err := a.cart.AddItem(domain.CartItem{
			ProductID: p.ID,
			Quantity:  *qty,
			Size:      variant.Size,
			Color:     variant.Color,
		}); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added %d x %s. Cart has %d item(s).\n", *qty, p.Name, a.cart.Count())
		return nil

	case "remove":
		if variant.Size == nil && variant.Color == nil {
			a.cart.RemoveItem(*id, nil)
		} else {
			a.cart.RemoveItem(*id, &variant)
		}
		fmt.Fprintf(a.out, "Cart has %d item(s).\n", a.cart.Count())
		return nil

	case "set":
		found, err := a.cart.SetQuantity(*id, variant, *qty)
		if err != nil {
			return err
		}
		if !found {
			return errors.New("no matching cart line")
		}
		fmt.Fprintf(a.out, "Cart has %d item(s).\n", a.cart.Count())
		return nil

	case "clear":
		a.cart.Clear()
		fmt.Fprintln(a.out, "Cart cleared.")
		return nil
	}
	return fmt.Errorf("unknown cart command %q", sub)
}

// checkOption rejects a chosen variant value the product does not offer.
func checkOption(field string, chosen *string, offered []string) error {
	if chosen == nil || len(offered) == 0 {
		return nil
	}
	for _, o := range offered {
		if o == *chosen {
			return nil
		}
	}
	return domain.NewValidationError(field, domain.CodeInvalidField,
		fmt.Sprintf("%s must be one of: %s", field, strings.Join(offered, ", ")))
}

func (a *app) printCart() error {
	lines := checkout.EnrichedLines(a.cart.Items(), a.catalog)
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVARIANT\tQTY\tSUBTOTAL")
	for _, l := range lines {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			l.ProductID, l.Product.Name, variantLabel(l.Variant()), l.Quantity, checkout.FormatPrice(l.Subtotal()))
	}
	fmt.Fprintf(w, "\t\t\tTOTAL\t%s\n", checkout.FormatPrice(checkout.Total(lines)))
	return w.Flush()
}

func variantLabel(v domain.Variant) string {
	var parts []string
	if v.Size != nil {
		parts = append(parts, *v.Size)
	}
	if v.Color != nil {
		parts = append(parts, *v.Color)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "/")
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := a.flags("checkout")
	var form checkout.ShippingForm
	fs.StringVar(&form.Name, "name", "", "full name")
	fs.StringVar(&form.Email, "email", "", "email address")
	fs.StringVar(&form.Address, "address", "", "street address")
	fs.StringVar(&form.City, "city", "", "city")
	fs.StringVar(&form.Country, "country", "", "country")
	fs.StringVar(&form.Zip, "zip", "", "postal code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.catalog.Load(ctx)
	summary, err := checkout.Checkout(a.cart, a.catalog, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order %s placed: %d line(s), total %s.\n",
		summary.Reference, len(summary.Lines), summary.FormattedTotal)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: storefront login <username> <password>")
	}
	cred, err := a.admin.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if err := a.local.Save(tokenKey, []byte(cred.Token)); err != nil {
		a.logger.Warn("Failed to save token", zap.Error(err))
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s).\n", cred.User.Username, cred.User.Role)
	return nil
}

func (a *app) logout() error {
	a.admin.Logout()
	if err := a.local.Delete(tokenKey); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) adminCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: storefront admin create|update|delete")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "create":
		return a.adminCreate(ctx, rest)
	case "update":
		return a.adminUpdate(ctx, rest)
	case "delete":
		return a.adminDelete(ctx, rest)
	}
	return fmt.Errorf("unknown admin command %q", sub)
}

func productFlags(fs *flag.FlagSet, form *domain.ProductForm) {
	fs.StringVar(&form.Name, "name", "", "product name")
	fs.StringVar(&form.Slug, "slug", "", "URL slug (derived from the name when empty)")
	fs.StringVar(&form.Description, "description", "", "description")
	fs.StringVar(&form.Price, "price", "", "price in dollars, e.g. 29.99")
	fs.StringVar(&form.Image, "image", "", "image URL")
	fs.StringVar(&form.Category, "category", "", "category")
	fs.StringVar(&form.Colors, "colors", "", "comma separated colors")
	fs.StringVar(&form.Sizes, "sizes", "", "comma separated sizes")
	fs.BoolVar(&form.Featured, "featured", false, "feature on the home page")
}

func (a *app) adminCreate(ctx context.Context, args []string) error {
	fs := a.flags("admin create")
	var form domain.ProductForm
	productFlags(fs, &form)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.catalog.Load(ctx)
	p, err := a.catalog.Add(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created product %d (%s). Catalog has %d products.\n", p.ID, p.Slug, a.catalog.Len())
	return nil
}

func (a *app) adminUpdate(ctx context.Context, args []string) error {
	fs := a.flags("admin update")
	id := fs.Int64("id", 0, "product id")
	var form domain.ProductForm
	productFlags(fs, &form)
	if err := fs.Parse(args); err != nil {
		return err
	}

	patch, err := patchFromFlags(fs, form)
	if err != nil {
		return err
	}

	a.catalog.Load(ctx)
	p, err := a.catalog.Update(ctx, *id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated product %d (%s).\n", p.ID, p.Slug)
	return nil
}

// patchFromFlags keeps only the flags given on the command line.
func patchFromFlags(fs *flag.FlagSet, form domain.ProductForm) (domain.ProductPatch, error) {
	var patch domain.ProductPatch
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "name":
			patch.Name = &form.Name
		case "slug":
			patch.Slug = &form.Slug
		case "description":
			patch.Description = &form.Description
		case "image":
			patch.Image = &form.Image
		case "price":
			var cents int64
			if cents, err = admin.ParsePrice(form.Price); err == nil {
				patch.Price = &cents
			}
		case "category":
			c := domain.Category(form.Category)
			patch.Category = &c
		case "colors":
			colors := admin.SplitList(form.Colors)
			patch.Colors = &colors
		case "sizes":
			sizes := admin.SplitList(form.Sizes)
			patch.Sizes = &sizes
		case "featured":
			patch.Featured = &form.Featured
		}
	})
	return patch, err
}

func (a *app) adminDelete(ctx context.Context, args []string) error {
	fs := a.flags("admin delete")
	id := fs.Int64("id", 0, "product id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.catalog.Load(ctx)
	if err := a.catalog.Remove(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted product %d. Catalog has %d products.\n", *id, a.catalog.Len())
	return nil
}
