package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teczamora/repositorio65/pkg/internal/model"
)

// catalogEntry is one official Artículo 65 fraction.
type catalogEntry struct {
	number     string
	name       string
	department model.Department
}

// fractionCatalog is the official fraction list as published for the
// obligated subject. Most fractions belong to the transparency unit; the
// spending-related ones (VIII, XXI, XLII) belong to financial resources.
var fractionCatalog = []catalogEntry{
	{"I", "Marco normativo al Sujeto Obligado", model.DepartmentTransparency},
	{"II", "Estructura orgánica", model.DepartmentTransparency},
	{"III", "Las atribuciones, facultades, competencias y funciones de cada área u órgano administrativo", model.DepartmentTransparency},
	{"IV", "Las metas y objetivos de las áreas u órganos administrativos de conformidad con sus programas operativos", model.DepartmentTransparency},
	{"V", "Los indicadores relacionados con temas de interés público o trascendencia social", model.DepartmentTransparency},
	{"VI", "El directorio de todas las personas servidoras públicas", model.DepartmentTransparency},
	{"VII", "La remuneración bruta y neta de todas las personas servidoras públicas de base y de confianza", model.DepartmentTransparency},
	{"VIII", "Los gastos de representación y viáticos", model.DepartmentFinance},
	{"IX", "El número total de las plazas y del personal de base y confianza", model.DepartmentTransparency},
	{"X", "Las contrataciones de servicios profesionales por honorarios", model.DepartmentTransparency},
	{"XI", "La versión pública de las declaraciones patrimoniales de las personas servidoras públicas", model.DepartmentTransparency},
	{"XII", "El domicilio y otros datos de contacto de la Unidad de Transparencia", model.DepartmentTransparency},
	{"XV", "Las condiciones generales de trabajo, contratos o convenios que regulen las relaciones laborales", model.DepartmentTransparency},
	{"XVI", "La información curricular", model.DepartmentTransparency},
	{"XVII", "El listado de personas servidoras públicas con sanciones administrativas firmes", model.DepartmentTransparency},
	{"XVIII", "Los servicios y trámites que ofrecen", model.DepartmentTransparency},
	{"XIX", "La información financiera sobre el presupuesto asignado", model.DepartmentTransparency},
	{"XXI", "Los montos destinados a gastos relativos a comunicación social y publicidad oficial", model.DepartmentFinance},
	{"XXII", "Los informes de resultados de las auditorías al ejercicio presupuestal de cada Sujeto Obligado", model.DepartmentTransparency},
	{"XXV", "Las concesiones, contratos, convenios, permisos, licencias o autorizaciones otorgados", model.DepartmentTransparency},
	{"XXVI", "Los resultados de los procedimientos de adjudicación directa, invitación restringida y licitación", model.DepartmentTransparency},
	{"XXVII", "Los informes que generen de conformidad con las disposiciones jurídicas", model.DepartmentTransparency},
	{"XXVIII", "Las estadísticas que generen en cumplimiento de sus atribuciones, facultades, competencias y funciones", model.DepartmentTransparency},
	{"XXIX", "Los informes de avances programáticos o presupuestales, balances generales y su estado financiero", model.DepartmentTransparency},
	{"XXX", "El padrón de proveedores y contratistas en los sistemas o medios habilitados para ello", model.DepartmentTransparency},
	{"XXXI", "Los convenios de colaboración, coordinación y concertación con los sectores público, social y privado", model.DepartmentTransparency},
	{"XXXII", "El inventario de bienes muebles e inmuebles en posesión y propiedad", model.DepartmentTransparency},
	{"XXXIII", "Las recomendaciones emitidas por los órganos públicos del Estado mexicano u organismos internacionales", model.DepartmentTransparency},
	{"XXXIV", "Las resoluciones que se emitan en procesos o procedimientos seguidos en forma de juicio", model.DepartmentTransparency},
	{"XXXV", "Los mecanismos de participación ciudadana", model.DepartmentTransparency},
	{"XXXVII", "Las actas y resoluciones del Comité de Transparencia", model.DepartmentTransparency},
	{"XLII", "Las donaciones hechas a terceros en dinero o en especie", model.DepartmentFinance},
	{"XLIII", "El catálogo de disposición documental y la guía simple de archivo o documental", model.DepartmentTransparency},
	{"XLVI", "Cualquier otra información que sea de utilidad o se considere relevante", model.DepartmentTransparency},
}

var (
	seedDemoUsers bool

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "load the official fraction catalog",
		Long: "Load or refresh the official Artículo 65 fraction catalog. " +
			"Existing fractions are updated in place; the command is idempotent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connectDB(cmd)
			if err != nil {
				return err
			}

			if err := client.Migrate(); err != nil {
				return err
			}

			if err := seedFractions(client.DB); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "catalog loaded: %d fractions\n", len(fractionCatalog))

			if seedDemoUsers {
				n, err := seedProfiles(client.DB)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "demo profiles ensured: %d\n", n)
			}

			return nil
		},
	}
)

func seedFractions(gdb *gorm.DB) error {
	for _, entry := range fractionCatalog {
		fraction := model.Fraction{
			Number:      entry.number,
			Name:        entry.name,
			Description: fmt.Sprintf("Fracción %s del Artículo 65 - %s", entry.number, entry.name),
			Department:  entry.department,
			Active:      true,
		}

		err := gdb.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "number"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "department", "active"}),
		}).Create(&fraction).Error
		if err != nil {
			return fmt.Errorf("seed fraction %s: %w", entry.number, err)
		}
	}

	return nil
}

// seedProfiles provisions one account per department for local trials.
func seedProfiles(gdb *gorm.DB) (int, error) {
	profiles := []model.UserProfile{
		{Username: "transparencia", Department: model.DepartmentTransparency},
		{Username: "financieros", Department: model.DepartmentFinance},
	}

	for i := range profiles {
		err := gdb.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"department"}),
		}).Create(&profiles[i]).Error
		if err != nil {
			return 0, fmt.Errorf("seed profile %s: %w", profiles[i].Username, err)
		}
	}

	return len(profiles), nil
}

func registerSeedCommand() {
	seedCmd.Flags().BoolVar(&seedDemoUsers, "demo-users", false, "also create one demo profile per department")

	rootCmd.AddCommand(seedCmd)
}
